package metrics

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then metrics are registered under the default namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.casesScored.Inc()

				families, err := registry.Gather()
				So(err, ShouldBeNil)

				names := map[string]bool{}
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["docket_court_cases_scored_total"], ShouldBeTrue)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options are applied", func() {
				So(manager.namespace, ShouldEqual, "test")
				So(manager.subsystem, ShouldEqual, "unit")
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})

				manager.simulatedDays.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "test_unit_simulated_days_total" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetValue(), ShouldEqual, "test")
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When passing empty options", func() {
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "docket")
				So(manager.subsystem, ShouldEqual, "court")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics", t, func() {
		Convey("When recording docket metrics", func() {
			before := testutil.ToFloat64(globalManager.casesScored)
			RecordCaseScored()
			RecordCaseRejected("validation")
			UpdateCasesByStatus("Pending", 7)
			UpdateRepositoryRecordsTotal(9)

			Convey("Then the values are visible", func() {
				So(testutil.ToFloat64(globalManager.casesScored), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.casesByStatus.WithLabelValues("Pending")), ShouldEqual, 7)
				So(testutil.ToFloat64(globalManager.recordsTotal), ShouldEqual, 9)
			})
		})

		Convey("When recording a simulated day", func() {
			days := testutil.ToFloat64(globalManager.simulatedDays)
			held := testutil.ToFloat64(globalManager.hearingsHeld)
			adjourned := testutil.ToFloat64(globalManager.adjournments)

			RecordSimulatedDay(4, 2)

			Convey("Then days, hearings and adjournments advance together", func() {
				So(testutil.ToFloat64(globalManager.simulatedDays), ShouldEqual, days+1)
				So(testutil.ToFloat64(globalManager.hearingsHeld), ShouldEqual, held+4)
				So(testutil.ToFloat64(globalManager.adjournments), ShouldEqual, adjourned+2)
			})
		})

		Convey("When recording allocation and session gauges", func() {
			UpdateJudgeLoad("Justice Rao", "Mid", 3)
			UpdateUnassignedCases(2)
			UpdateActiveCases(11)
			UpdateDisposedTotal(5)

			Convey("Then the gauges hold the last value", func() {
				So(testutil.ToFloat64(globalManager.judgeLoad.WithLabelValues("Justice Rao", "Mid")), ShouldEqual, 3)
				So(testutil.ToFloat64(globalManager.unassignedCases), ShouldEqual, 2)
				So(testutil.ToFloat64(globalManager.activeCases), ShouldEqual, 11)
				So(testutil.ToFloat64(globalManager.disposedTotal), ShouldEqual, 5)
			})
		})

		Convey("When recording the remaining metrics", func() {
			Convey("Then none of them panic", func() {
				So(func() {
					RecordRepositoryUpdateLatency(1)
					RecordRepositoryQueryLatency(0.5)
					RecordSourceAppend()
					RecordSourceFailure("append")
					RecordAllocationLatency(0.2)
					RecordSessionReset()
					RecordHTTPRequest("/cases", "POST", "201")
					RecordHTTPRequestDuration("/cases", "POST", "201", 3)
					RecordErrorByComponent("repository", "not_found")
					RecordErrorByEndpoint("/cases", "POST", "rejected")
					UpdateSystemMemoryUsage(1024)
					UpdateSystemGoroutineCount(10)
					RecordSystemGCPauseTime(0.3)
				}, ShouldNotPanic)
			})
		})

		Convey("When gathering from the custom registry", func() {
			families, err := GetRegistry().Gather()

			Convey("Then the docket metrics are present", func() {
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given concurrent recorders", t, func() {
		before := testutil.ToFloat64(globalManager.hearingsHeld)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					RecordSimulatedDay(1, 0)
					RecordHTTPRequest("/simulation/day", "POST", "200")
				}
			}()
		}
		wg.Wait()

		Convey("Then no increments are lost", func() {
			So(testutil.ToFloat64(globalManager.hearingsHeld), ShouldEqual, before+1000)
		})
	})
}
