package clock_test

import (
	"time"

	gomock "go.uber.org/mock/gomock"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/meridianhft/tradecore/clock"
	"github.com/meridianhft/tradecore/hooking"
)

var _ = Describe("TestClock", func() {
	var (
		c       *clock.TestClock
		noop    clock.TimeEventCallback
		second  = clock.UnixNanos(time.Second)
		fired   []clock.TimeEvent
		collect clock.TimeEventCallback
	)

	BeforeEach(func() {
		c = clock.NewTestClock()
		noop = func(clock.TimeEvent) {}
		fired = nil
		collect = func(e clock.TimeEvent) { fired = append(fired, e) }
	})

	It("should start at the epoch", func() {
		Expect(c.TimestampNs()).To(Equal(clock.UnixNanos(0)))
		Expect(c.Timestamp()).To(Equal(0.0))
		Expect(c.TimestampMs()).To(Equal(int64(0)))
		Expect(c.TimestampUs()).To(Equal(int64(0)))
	})

	It("should set time without firing timers", func() {
		Expect(c.SetTimeAlert("alert", 5*second, noop)).To(Succeed())

		c.SetTime(10 * second)

		Expect(c.TimestampNs()).To(Equal(10 * second))
		Expect(c.TimerCount()).To(Equal(1))
	})

	It("should report timestamps in every unit", func() {
		c.SetTime(clock.UnixNanos(1_500_000_000))

		Expect(c.Timestamp()).To(BeNumerically("~", 1.5, 1e-12))
		Expect(c.TimestampMs()).To(Equal(int64(1500)))
		Expect(c.TimestampUs()).To(Equal(int64(1_500_000)))
	})

	It("should reject an alert at or before the current time", func() {
		c.SetTime(5 * second)

		err := c.SetTimeAlert("alert", 5*second, noop)

		Expect(err).To(MatchError(clock.ErrAlertTimeInPast))
		Expect(c.TimerCount()).To(Equal(0))
	})

	It("should reject a timer with a non-positive interval", func() {
		err := c.SetTimer("timer", 0, 0, 0, noop)

		Expect(err).To(MatchError(clock.ErrInvalidInterval))
	})

	It("should reject a timer starting before the current time", func() {
		c.SetTime(10 * second)

		err := c.SetTimer("timer", time.Second, second, 0, noop)

		Expect(err).To(MatchError(clock.ErrStartTimeInPast))
		Expect(c.TimerCount()).To(Equal(0))
	})

	It("should accept a timer starting at the current time", func() {
		c.SetTime(10 * second)

		Expect(c.SetTimer("timer", time.Second, 10*second, 0, noop)).To(Succeed())

		next, err := c.NextTime("timer")
		Expect(err).ToNot(HaveOccurred())
		Expect(next).To(Equal(11 * second))
	})

	It("should reject a stop time before the first occurrence", func() {
		err := c.SetTimer("timer", time.Second, 2*second, second, noop)

		Expect(err).To(MatchError(clock.ErrInvalidStopTime))
	})

	It("should reject an empty timer name", func() {
		err := c.SetTimeAlert("", second, noop)

		Expect(err).To(MatchError(clock.ErrEmptyTimerName))
	})

	It("should reject a timer without a callback when no default handler is registered", func() {
		err := c.SetTimer("timer", time.Second, 0, 0, nil)

		Expect(err).To(MatchError(clock.ErrNoHandler))
	})

	It("should fire a one-shot alert exactly once", func() {
		Expect(c.SetTimeAlert("alert", 3*second, collect)).To(Succeed())

		batch, err := c.AdvanceTime(10*second, true)

		Expect(err).ToNot(HaveOccurred())
		Expect(batch).To(HaveLen(1))
		Expect(batch[0].Event.TimerName).To(Equal("alert"))
		Expect(batch[0].Event.TsEvent).To(Equal(3 * second))
		Expect(batch[0].Event.TsInit).To(Equal(10 * second))
		Expect(c.TimerCount()).To(Equal(0))
	})

	It("should produce one event per elapsed occurrence", func() {
		Expect(c.SetTimer("timer", time.Second, 0, 0, collect)).To(Succeed())

		batch, err := c.AdvanceTime(5*second, true)

		Expect(err).ToNot(HaveOccurred())
		Expect(batch).To(HaveLen(5))
		for i, h := range batch {
			Expect(h.Event.TsEvent).To(Equal(clock.UnixNanos(i+1) * second))
		}
	})

	It("should self-cancel a timer once its stop time is exceeded", func() {
		Expect(c.SetTimer("timer", time.Second, 0, 3*second, collect)).To(Succeed())

		batch, err := c.AdvanceTime(5*second, true)

		Expect(err).ToNot(HaveOccurred())
		Expect(batch).To(HaveLen(3))
		Expect(c.TimerCount()).To(Equal(0))
		Expect(c.TimerNames()).To(BeEmpty())
	})

	It("should produce the same events advancing in steps as in one jump", func() {
		stepClock := clock.NewTestClock()
		jumpClock := clock.NewTestClock()
		Expect(stepClock.SetTimer("timer", time.Second, 0, 0, noop)).To(Succeed())
		Expect(jumpClock.SetTimer("timer", time.Second, 0, 0, noop)).To(Succeed())

		var stepped []clock.UnixNanos
		for to := second; to <= 5*second; to += second {
			batch, err := stepClock.AdvanceTime(to, true)
			Expect(err).ToNot(HaveOccurred())
			for _, h := range batch {
				stepped = append(stepped, h.Event.TsEvent)
			}
		}

		var jumped []clock.UnixNanos
		batch, err := jumpClock.AdvanceTime(5*second, true)
		Expect(err).ToNot(HaveOccurred())
		for _, h := range batch {
			jumped = append(jumped, h.Event.TsEvent)
		}

		Expect(stepped).To(Equal(jumped))
	})

	It("should not mutate state on a preview advance", func() {
		Expect(c.SetTimer("timer", time.Second, 0, 0, collect)).To(Succeed())

		first, err := c.AdvanceTime(5*second, false)
		Expect(err).ToNot(HaveOccurred())
		second2, err := c.AdvanceTime(5*second, false)
		Expect(err).ToNot(HaveOccurred())

		Expect(first).To(HaveLen(5))
		Expect(second2).To(HaveLen(5))
		for i := range first {
			Expect(first[i].Event.TsEvent).To(Equal(second2[i].Event.TsEvent))
			Expect(first[i].Event.TimerName).To(Equal(second2[i].Event.TimerName))
		}

		Expect(c.TimestampNs()).To(Equal(clock.UnixNanos(0)))
		next, err := c.NextTime("timer")
		Expect(err).ToNot(HaveOccurred())
		Expect(next).To(Equal(second))
	})

	It("should order same-timestamp events by timer name", func() {
		Expect(c.SetTimer("zulu", time.Second, 0, 0, noop)).To(Succeed())
		Expect(c.SetTimer("alpha", time.Second, 0, 0, noop)).To(Succeed())
		Expect(c.SetTimer("mike", time.Second, 0, 0, noop)).To(Succeed())

		batch, err := c.AdvanceTime(2*second, true)

		Expect(err).ToNot(HaveOccurred())
		Expect(batch).To(HaveLen(6))

		var names []string
		var times []clock.UnixNanos
		for _, h := range batch {
			names = append(names, h.Event.TimerName)
			times = append(times, h.Event.TsEvent)
		}
		Expect(names).To(Equal([]string{
			"alpha", "mike", "zulu",
			"alpha", "mike", "zulu",
		}))
		Expect(times).To(Equal([]clock.UnixNanos{
			second, second, second,
			2 * second, 2 * second, 2 * second,
		}))
	})

	It("should keep batch timestamps non-decreasing", func() {
		Expect(c.SetTimer("fast", 300*time.Millisecond, 0, 0, noop)).To(Succeed())
		Expect(c.SetTimer("slow", 700*time.Millisecond, 0, 0, noop)).To(Succeed())

		batch, err := c.AdvanceTime(5*second, true)

		Expect(err).ToNot(HaveOccurred())
		for i := 1; i < len(batch); i++ {
			Expect(batch[i].Event.TsEvent).To(
				BeNumerically(">=", batch[i-1].Event.TsEvent))
		}
	})

	It("should reject committing an advance backwards", func() {
		c.SetTime(10 * second)

		_, err := c.AdvanceTime(5*second, true)

		Expect(err).To(MatchError(clock.ErrAdvanceTimeBackwards))
		Expect(c.TimestampNs()).To(Equal(10 * second))
	})

	It("should generate a unique ID per event", func() {
		Expect(c.SetTimer("timer", time.Second, 0, 0, noop)).To(Succeed())

		batch, err := c.AdvanceTime(3*second, true)

		Expect(err).ToNot(HaveOccurred())
		seen := map[string]bool{}
		for _, h := range batch {
			Expect(h.Event.ID).ToNot(BeEmpty())
			Expect(seen).ToNot(HaveKey(h.Event.ID))
			seen[h.Event.ID] = true
		}
	})

	It("should dispatch through the callback on Handle", func() {
		Expect(c.SetTimeAlert("alert", second, collect)).To(Succeed())

		batch, err := c.AdvanceTime(second, true)
		Expect(err).ToNot(HaveOccurred())
		for _, h := range batch {
			h.Handle()
		}

		Expect(fired).To(HaveLen(1))
		Expect(fired[0].TimerName).To(Equal("alert"))
	})

	It("should fall back to the default handler", func() {
		c.RegisterDefaultHandler(collect)
		Expect(c.SetTimeAlert("alert", second, nil)).To(Succeed())

		batch, err := c.AdvanceTime(second, true)
		Expect(err).ToNot(HaveOccurred())
		for _, h := range batch {
			h.Handle()
		}

		Expect(fired).To(HaveLen(1))
	})

	It("should replace a timer registered under an existing name", func() {
		Expect(c.SetTimeAlert("alert", 3*second, noop)).To(Succeed())
		Expect(c.SetTimeAlert("alert", 7*second, noop)).To(Succeed())

		Expect(c.TimerCount()).To(Equal(1))
		next, err := c.NextTime("alert")
		Expect(err).ToNot(HaveOccurred())
		Expect(next).To(Equal(7 * second))
	})

	It("should fail next time lookups for unknown timers", func() {
		_, err := c.NextTime("missing")

		Expect(err).To(MatchError(clock.ErrTimerNotFound))
	})

	It("should treat canceling a nonexistent timer as a no-op", func() {
		Expect(c.SetTimeAlert("alert", second, noop)).To(Succeed())

		c.CancelTimer("missing")

		Expect(c.TimerCount()).To(Equal(1))
	})

	It("should cancel all timers", func() {
		Expect(c.SetTimeAlert("a", second, noop)).To(Succeed())
		Expect(c.SetTimer("b", time.Second, 0, 0, noop)).To(Succeed())

		c.CancelTimers()

		Expect(c.TimerCount()).To(Equal(0))
	})

	It("should list timer names sorted", func() {
		Expect(c.SetTimeAlert("zulu", second, noop)).To(Succeed())
		Expect(c.SetTimeAlert("alpha", second, noop)).To(Succeed())

		Expect(c.TimerNames()).To(Equal([]string{"alpha", "zulu"}))
	})

	It("should invoke hooks for committed advances only", func() {
		mockCtrl := gomock.NewController(GinkgoT())
		defer mockCtrl.Finish()

		hook := NewMockHook(mockCtrl)
		c.AcceptHook(hook)
		Expect(c.SetTimer("timer", time.Second, 0, 0, noop)).To(Succeed())

		_, err := c.AdvanceTime(2*second, false)
		Expect(err).ToNot(HaveOccurred())

		hook.EXPECT().
			Func(gomock.Any()).
			Do(func(ctx hooking.HookCtx) {
				Expect(ctx.Pos).To(Equal(hooking.HookPosBeforeEvent))
				Expect(ctx.Item).To(BeAssignableToTypeOf(clock.TimeEvent{}))
			}).
			Times(2)

		_, err = c.AdvanceTime(2*second, true)
		Expect(err).ToNot(HaveOccurred())
	})
})
