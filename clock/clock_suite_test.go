package clock_test

import (
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

//go:generate mockgen -destination "mock_hooking_test.go" -package clock_test -write_package_comment=false github.com/meridianhft/tradecore/hooking Hook

func TestClock(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Clock")
}
