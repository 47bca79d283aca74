package clock_test

import (
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/shapeview/internal/clock"
)

// chunk splits total into random frame deltas no larger than limit.
func chunk(rng *rand.Rand, total, limit time.Duration) []time.Duration {
	var out []time.Duration
	for total > 0 {
		d := time.Duration(rng.Int63n(int64(limit))) + 1
		if d > total {
			d = total
		}
		out = append(out, d)
		total -= d
	}
	return out
}

func run(c *clock.Clock, deltas []time.Duration) int {
	n := 0
	for _, d := range deltas {
		n += c.Drain(d, nil)
		Expect(c.Accumulated()).To(BeNumerically(">=", 0))
		Expect(c.Accumulated()).To(BeNumerically("<", c.TickDuration()))
	}
	return n
}

var _ = Describe("Clock", func() {
	DescribeTable("emits floor(T*R) ticks however T is chunked",
		func(rate int, total time.Duration, seed int64) {
			tick := time.Second / time.Duration(rate)

			whole := run(clock.New(rate, 1.0), []time.Duration{total})
			Expect(whole).To(Equal(int(total / tick)))

			long := total * 4
			rng := rand.New(rand.NewSource(seed))
			for i := 0; i < 20; i++ {
				deltas := chunk(rng, long, 40*time.Millisecond)
				Expect(run(clock.New(rate, 1.0), deltas)).To(Equal(int(long / tick)))
			}
		},
		Entry("100 Hz over 45ms", 100, 45*time.Millisecond, int64(1)),
		Entry("1000 Hz over 200ms", 1000, 200*time.Millisecond, int64(2)),
		Entry("125 Hz over 117ms", 125, 117*time.Millisecond, int64(3)),
		Entry("1 Hz over 249ms", 1, 249*time.Millisecond, int64(4)),
		Entry("250 Hz over 1ms", 250, time.Millisecond, int64(5)),
	)

	DescribeTable("scales tick rate linearly with |time_scale|",
		func(scale float32) {
			base := clock.New(100, 1.0)
			scaled := clock.New(100, scale)

			deltas := make([]time.Duration, 120)
			for i := range deltas {
				deltas[i] = 16 * time.Millisecond
			}

			b := run(base, deltas)
			s := run(scaled, deltas)

			abs := scale
			if abs < 0 {
				abs = -abs
			}
			Expect(float64(s)).To(BeNumerically("~", float64(b)*float64(abs), 1))
		},
		Entry("double", float32(2.0)),
		Entry("half", float32(0.5)),
		Entry("reverse double", float32(-2.0)),
		Entry("max", float32(20.0)),
	)

	It("never ticks at zero scale", func() {
		c := clock.New(1000, 0)
		rng := rand.New(rand.NewSource(42))
		Expect(run(c, chunk(rng, 10*time.Second, 250*time.Millisecond))).To(BeZero())
	})

	It("resumes without a burst after a pause", func() {
		c := clock.New(100, 1.0)
		c.Drain(15*time.Millisecond, nil)

		c.SetTimeScale(0)
		run(c, []time.Duration{time.Second / 5, time.Second / 5, time.Second / 5})

		c.SetTimeScale(1.0)
		Expect(c.Drain(5*time.Millisecond, nil)).To(Equal(1))
	})
})
