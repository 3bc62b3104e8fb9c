package thermostat

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestThermostat(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Thermostat Suite")
}
