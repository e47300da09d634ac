package integrators

import (
	"testing"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/params"
)

func BenchmarkStormerVerlet(b *testing.B) {
	integ := NewStormerVerlet(1.0 / 60)
	v := params.Defaults()
	w := dynamo.NewWindow(v[params.Amplitude])

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integ.Step(&w, v)
	}
}
