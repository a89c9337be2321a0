package clock_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/meridianhft/tradecore/clock"
)

var _ = Describe("Freq", func() {
	It("should calculate the period", func() {
		Expect((1 * clock.Hz).Period()).To(Equal(time.Second))
		Expect((1 * clock.KHz).Period()).To(Equal(time.Millisecond))
		Expect((1 * clock.MHz).Period()).To(Equal(time.Microsecond))
	})

	It("should return this tick", func() {
		f := 1 * clock.KHz
		Expect(f.ThisTick(clock.UnixNanos(0))).To(Equal(clock.UnixNanos(0)))
		Expect(f.ThisTick(clock.UnixNanos(1))).To(
			Equal(clock.UnixNanos(time.Millisecond)))
		Expect(f.ThisTick(clock.UnixNanos(time.Millisecond))).To(
			Equal(clock.UnixNanos(time.Millisecond)))
	})

	It("should return the next tick", func() {
		f := 1 * clock.KHz
		Expect(f.NextTick(clock.UnixNanos(0))).To(
			Equal(clock.UnixNanos(time.Millisecond)))
		Expect(f.NextTick(clock.UnixNanos(time.Millisecond))).To(
			Equal(clock.UnixNanos(2 * time.Millisecond)))
	})
})

var _ = Describe("UnixNanos", func() {
	It("should convert between representations", func() {
		t := clock.UnixNanos(1_500_000_000)

		Expect(t.Seconds()).To(BeNumerically("~", 1.5, 1e-12))
		Expect(t.Millis()).To(Equal(int64(1500)))
		Expect(t.Micros()).To(Equal(int64(1_500_000)))
		Expect(t.Time().UnixNano()).To(Equal(int64(t)))
	})

	It("should round-trip through time.Time", func() {
		now := time.Now()

		Expect(clock.NanosFromTime(now)).To(
			Equal(clock.UnixNanos(now.UnixNano())))
	})

	It("should convert from floating-point seconds", func() {
		Expect(clock.NanosFromSecs(1.5)).To(Equal(clock.UnixNanos(1_500_000_000)))
	})

	It("should shift by a duration", func() {
		t := clock.UnixNanos(time.Second)

		Expect(t.Add(time.Millisecond)).To(
			Equal(clock.UnixNanos(time.Second + time.Millisecond)))
	})
})
