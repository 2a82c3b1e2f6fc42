package utils

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

var (
	cpuUsageGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "system_cpu_usage_percent",
		Help: "Current CPU usage percentage",
	})

	memUsageGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "system_memory_usage_percent",
		Help: "Current memory usage percentage",
	})
)

// GetCPUUsage returns the current CPU usage as a percentage
func GetCPUUsage() float64 {
	percentage, err := cpu.Percent(time.Second, false)
	if err != nil {
		log.Printf("Error getting CPU usage: %v", err)
		return 0
	}
	if len(percentage) > 0 {
		return percentage[0]
	}
	return 0
}

// CollectSystemMetrics samples CPU and memory usage into the Prometheus
// gauges every interval. Runs until the process exits; call as a
// goroutine from main.
func CollectSystemMetrics(interval time.Duration) {
	for {
		cpuUsageGauge.Set(GetCPUUsage())

		if vm, err := mem.VirtualMemory(); err != nil {
			log.Printf("Error getting memory usage: %v", err)
		} else {
			memUsageGauge.Set(vm.UsedPercent)
		}

		time.Sleep(interval)
	}
}
