package monitoring

import (
	"encoding/json"
	"net/http/httptest"
	"time"

	"github.com/gorilla/mux"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/meridianhft/tradecore/clock"
	"github.com/meridianhft/tradecore/lifecycle"
	"github.com/meridianhft/tradecore/logging"
)

type sampleComponent struct {
	*lifecycle.ComponentBase
}

func newSampleComponent(name string) *sampleComponent {
	return &sampleComponent{
		ComponentBase: lifecycle.NewComponentBase(name),
	}
}

var _ = Describe("Monitor", func() {
	var m *Monitor

	BeforeEach(func() {
		m = NewMonitor()
	})

	It("should register clocks once per name", func() {
		c := clock.NewTestClock()

		m.RegisterClock("backtest", c)
		m.RegisterClock("backtest", c)

		Expect(m.clockNames).To(HaveLen(1))
		Expect(m.clocks).To(HaveLen(1))
	})

	It("should register components", func() {
		m.RegisterComponent(newSampleComponent("DataEngine"))
		m.RegisterComponent(newSampleComponent("RiskEngine"))

		Expect(m.components).To(HaveLen(2))
	})

	It("should list clocks with their timer counts", func() {
		c := clock.NewTestClock()
		c.SetTime(clock.UnixNanos(time.Second))
		Expect(c.SetTimeAlert("alert", clock.UnixNanos(5*time.Second),
			func(clock.TimeEvent) {})).To(Succeed())
		m.RegisterClock("backtest", c)

		w := httptest.NewRecorder()
		m.listClocks(w, httptest.NewRequest("GET", "/api/clocks", nil))

		var rsp []clockRsp
		Expect(json.Unmarshal(w.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp).To(HaveLen(1))
		Expect(rsp[0].Name).To(Equal("backtest"))
		Expect(rsp[0].TimestampNs).To(Equal(int64(time.Second)))
		Expect(rsp[0].TimerCount).To(Equal(1))
	})

	It("should list the timers of a clock", func() {
		c := clock.NewTestClock()
		Expect(c.SetTimer("bar-close", time.Second, 0, 0,
			func(clock.TimeEvent) {})).To(Succeed())
		m.RegisterClock("backtest", c)

		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/clocks/backtest/timers", nil)
		r = mux.SetURLVars(r, map[string]string{"name": "backtest"})
		m.listTimers(w, r)

		var rsp []timerRsp
		Expect(json.Unmarshal(w.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp).To(HaveLen(1))
		Expect(rsp[0].Name).To(Equal("bar-close"))
		Expect(rsp[0].NextTimeNs).To(Equal(int64(time.Second)))
	})

	It("should 404 on an unknown clock", func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/clocks/missing/timers", nil)
		r = mux.SetURLVars(r, map[string]string{"name": "missing"})
		m.listTimers(w, r)

		Expect(w.Code).To(Equal(404))
	})

	It("should list loggers", func() {
		l, err := logging.NewLogger(logging.Config{
			TraderID: "TRADER-001",
			Bypassed: true,
		})
		Expect(err).ToNot(HaveOccurred())
		defer l.Close()
		m.RegisterLogger("main", l)

		w := httptest.NewRecorder()
		m.listLoggers(w, httptest.NewRequest("GET", "/api/loggers", nil))

		var rsp []loggerRsp
		Expect(json.Unmarshal(w.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp).To(HaveLen(1))
		Expect(rsp[0].Name).To(Equal("main"))
		Expect(rsp[0].TraderID).To(Equal("TRADER-001"))
		Expect(rsp[0].Bypassed).To(BeTrue())
	})

	It("should list components with their states", func() {
		c := newSampleComponent("DataEngine")
		Expect(c.Initialize()).To(Succeed())
		m.RegisterComponent(c)

		w := httptest.NewRecorder()
		m.listComponents(w, httptest.NewRequest("GET", "/api/components", nil))

		var rsp []componentRsp
		Expect(json.Unmarshal(w.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp).To(HaveLen(1))
		Expect(rsp[0].Name).To(Equal("DataEngine"))
		Expect(rsp[0].State).To(Equal("READY"))
	})

	It("should 404 on an unknown component", func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/components/missing", nil)
		r = mux.SetURLVars(r, map[string]string{"name": "missing"})
		m.listComponentDetails(w, r)

		Expect(w.Code).To(Equal(404))
	})
})
