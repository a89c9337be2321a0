// Package monitoring turns a running trading node into a small HTTP server
// exposing clock, timer, logger and component state for external inspection.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/meridianhft/tradecore/clock"
	"github.com/meridianhft/tradecore/lifecycle"
	"github.com/meridianhft/tradecore/logging"
)

// Monitor serves runtime state of registered clocks, loggers and components
// over HTTP.
type Monitor struct {
	portNumber  int
	openBrowser bool

	clockNames []string
	clocks     map[string]clock.Clock

	loggerNames []string
	loggers     map[string]*logging.Logger

	components []lifecycle.Component
}

// NewMonitor creates a Monitor.
func NewMonitor() *Monitor {
	return &Monitor{
		clocks:  make(map[string]clock.Clock),
		loggers: make(map[string]*logging.Logger),
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithBrowser makes StartServer open the monitor URL in the default browser.
func (m *Monitor) WithBrowser() *Monitor {
	m.openBrowser = true
	return m
}

// RegisterClock registers a clock to be monitored under the given name.
func (m *Monitor) RegisterClock(name string, c clock.Clock) {
	if _, exists := m.clocks[name]; !exists {
		m.clockNames = append(m.clockNames, name)
	}
	m.clocks[name] = c
}

// RegisterLogger registers a logger to be monitored under the given name.
func (m *Monitor) RegisterLogger(name string, l *logging.Logger) {
	if _, exists := m.loggers[name]; !exists {
		m.loggerNames = append(m.loggerNames, name)
	}
	m.loggers[name] = l
}

// RegisterComponent registers a component to be monitored.
func (m *Monitor) RegisterComponent(c lifecycle.Component) {
	m.components = append(m.components, c)
}

// StartServer starts the monitor as a web server, on the configured port if
// one was set.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()

	r.HandleFunc("/api/clocks", m.listClocks)
	r.HandleFunc("/api/clocks/{name}/timers", m.listTimers)
	r.HandleFunc("/api/loggers", m.listLoggers)
	r.HandleFunc("/api/components", m.listComponents)
	r.HandleFunc("/api/components/{name}", m.listComponentDetails)
	r.HandleFunc("/api/resources", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	http.Handle("/", r)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring trading node with %s\n", url)

	if m.openBrowser {
		_ = browser.OpenURL(url)
	}

	go func() {
		err = http.Serve(listener, nil)
		dieOnErr(err)
	}()
}

type clockRsp struct {
	Name        string  `json:"name"`
	TimestampNs int64   `json:"timestamp_ns"`
	Timestamp   float64 `json:"timestamp"`
	TimerCount  int     `json:"timer_count"`
}

func (m *Monitor) listClocks(w http.ResponseWriter, _ *http.Request) {
	rsp := make([]clockRsp, 0, len(m.clockNames))
	for _, name := range m.clockNames {
		c := m.clocks[name]
		rsp = append(rsp, clockRsp{
			Name:        name,
			TimestampNs: int64(c.TimestampNs()),
			Timestamp:   c.Timestamp(),
			TimerCount:  c.TimerCount(),
		})
	}

	writeJSON(w, rsp)
}

type timerRsp struct {
	Name       string `json:"name"`
	NextTimeNs int64  `json:"next_time_ns"`
}

func (m *Monitor) listTimers(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	c, ok := m.clocks[name]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintf(w, "Clock %s not found", name)
		return
	}

	timers := make([]timerRsp, 0, c.TimerCount())
	for _, timerName := range c.TimerNames() {
		next, err := c.NextTime(timerName)
		if err != nil {
			// The timer fired or was canceled between the two calls.
			continue
		}
		timers = append(timers, timerRsp{
			Name:       timerName,
			NextTimeNs: int64(next),
		})
	}

	writeJSON(w, timers)
}

type loggerRsp struct {
	Name       string `json:"name"`
	TraderID   string `json:"trader_id"`
	InstanceID string `json:"instance_id"`
	QueueDepth int    `json:"queue_depth"`
	Dropped    uint64 `json:"dropped"`
	Bypassed   bool   `json:"bypassed"`
}

func (m *Monitor) listLoggers(w http.ResponseWriter, _ *http.Request) {
	rsp := make([]loggerRsp, 0, len(m.loggerNames))
	for _, name := range m.loggerNames {
		l := m.loggers[name]
		rsp = append(rsp, loggerRsp{
			Name:       name,
			TraderID:   l.TraderID(),
			InstanceID: l.InstanceID(),
			QueueDepth: l.QueueDepth(),
			Dropped:    l.Dropped(),
			Bypassed:   l.IsBypassed(),
		})
	}

	writeJSON(w, rsp)
}

type componentRsp struct {
	Name  string `json:"name"`
	State string `json:"state"`
}

func (m *Monitor) listComponents(w http.ResponseWriter, _ *http.Request) {
	rsp := make([]componentRsp, 0, len(m.components))
	for _, c := range m.components {
		rsp = append(rsp, componentRsp{
			Name:  c.Name(),
			State: c.State().String(),
		})
	}

	writeJSON(w, rsp)
}

func (m *Monitor) listComponentDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	component := m.findComponentOr404(w, name)
	if component == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(component)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) findComponentOr404(
	w http.ResponseWriter,
	name string,
) lifecycle.Component {
	var component lifecycle.Component
	for _, c := range m.components {
		if c.Name() == name {
			component = c
		}
	}

	if component == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Component not found"))
		dieOnErr(err)
	}

	return component
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memorySize, err := proc.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(data)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
