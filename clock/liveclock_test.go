package clock_test

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/meridianhft/tradecore/clock"
)

var _ = Describe("LiveClock", func() {
	var c *clock.LiveClock

	BeforeEach(func() {
		c = clock.NewLiveClock()
	})

	AfterEach(func() {
		c.Stop()
	})

	It("should track the wall clock", func() {
		before := time.Now().UnixNano()
		ts := c.TimestampNs()
		after := time.Now().UnixNano()

		Expect(int64(ts)).To(BeNumerically(">=", before))
		Expect(int64(ts)).To(BeNumerically("<=", after))
	})

	It("should never report a decreasing timestamp", func() {
		var prev clock.UnixNanos
		for i := 0; i < 10000; i++ {
			now := c.TimestampNs()
			Expect(now).To(BeNumerically(">=", prev))
			prev = now
		}
	})

	It("should keep timestamps monotonic across goroutines", func() {
		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer GinkgoRecover()

				var prev clock.UnixNanos
				for i := 0; i < 1000; i++ {
					now := c.TimestampNs()
					Expect(now).To(BeNumerically(">=", prev))
					prev = now
				}
			}()
		}
		wg.Wait()
	})

	It("should fire a one-shot alert", func() {
		fired := make(chan clock.TimeEvent, 1)
		alertTime := c.TimestampNs().Add(20 * time.Millisecond)
		err := c.SetTimeAlert("alert", alertTime, func(e clock.TimeEvent) {
			fired <- e
		})
		Expect(err).ToNot(HaveOccurred())

		c.Start()

		var event clock.TimeEvent
		Eventually(fired, time.Second).Should(Receive(&event))
		Expect(event.TimerName).To(Equal("alert"))
		Expect(event.TsEvent).To(Equal(alertTime))
		Expect(c.TimerCount()).To(Equal(0))
	})

	It("should fire a repeating timer until canceled", func() {
		fired := make(chan clock.TimeEvent, 16)
		err := c.SetTimer("timer", 10*time.Millisecond, 0, 0,
			func(e clock.TimeEvent) { fired <- e })
		Expect(err).ToNot(HaveOccurred())

		c.Start()

		for i := 0; i < 3; i++ {
			Eventually(fired, time.Second).Should(Receive())
		}

		c.CancelTimer("timer")
		Expect(c.TimerCount()).To(Equal(0))
	})

	It("should stop a timer at its stop time", func() {
		fired := make(chan clock.TimeEvent, 16)
		start := c.TimestampNs().Add(5 * time.Millisecond)
		stop := start.Add(35 * time.Millisecond)
		err := c.SetTimer("timer", 10*time.Millisecond, start, stop,
			func(e clock.TimeEvent) { fired <- e })
		Expect(err).ToNot(HaveOccurred())

		c.Start()

		Eventually(func() int {
			return c.TimerCount()
		}, time.Second).Should(Equal(0))
		Expect(len(fired)).To(BeNumerically("<=", 3))
	})

	It("should keep timers registered across Stop", func() {
		err := c.SetTimer("timer", time.Hour, 0, 0, func(clock.TimeEvent) {})
		Expect(err).ToNot(HaveOccurred())

		c.Start()
		c.Stop()

		Expect(c.TimerCount()).To(Equal(1))
	})

	It("should tolerate repeated Start and Stop calls", func() {
		c.Start()
		c.Start()
		c.Stop()
		c.Stop()
	})

	It("should tolerate concurrent Start and Stop calls", func() {
		var wg sync.WaitGroup
		for i := 0; i < 200; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				c.Start()
			}()
			go func() {
				defer wg.Done()
				c.Stop()
			}()
		}
		wg.Wait()

		c.Stop()
	})

	It("should dispatch through the default handler", func() {
		fired := make(chan clock.TimeEvent, 1)
		c.RegisterDefaultHandler(func(e clock.TimeEvent) { fired <- e })

		alertTime := c.TimestampNs().Add(20 * time.Millisecond)
		Expect(c.SetTimeAlert("alert", alertTime, nil)).To(Succeed())

		c.Start()

		Eventually(fired, time.Second).Should(Receive())
	})
})
