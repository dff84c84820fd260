package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/docket/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"DOCKET_CONFIG",
	"DOCKET_ADDR",
	"DOCKET_CAPACITY",
	"DOCKET_ADJOURNMENT_RATE",
	"DOCKET_SEED",
	"DOCKET_SOURCE",
	"DOCKET_JUDGES",
	"DOCKET_WEIGHTS__CASE",
	"DOCKET_WEIGHTS__AGE",
	"DOCKET_CASE_FOLD",
}

func clearConfigEnvVars() {
	for _, k := range configEnvVars {
		_ = os.Unsetenv(k)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docket.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.Capacity, convey.ShouldEqual, 5)
				convey.So(cfg.Judges, convey.ShouldHaveLength, 5)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("DOCKET_ADDR", ":8080")
			_ = os.Setenv("DOCKET_CAPACITY", "3")
			_ = os.Setenv("DOCKET_ADJOURNMENT_RATE", "0")
			_ = os.Setenv("DOCKET_SEED", "42")
			_ = os.Setenv("DOCKET_SOURCE", "sqlite")
			_ = os.Setenv("DOCKET_JUDGES", "Justice A:Senior,Justice B:Junior")
			_ = os.Setenv("DOCKET_WEIGHTS__CASE", "45")
			_ = os.Setenv("DOCKET_WEIGHTS__AGE", "0")
			_ = os.Setenv("DOCKET_CASE_FOLD", "true")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Capacity, convey.ShouldEqual, 3)
				convey.So(cfg.AdjournmentRate, convey.ShouldEqual, 0)
				convey.So(cfg.Seed, convey.ShouldEqual, 42)
				convey.So(cfg.Source, convey.ShouldEqual, config.SourceSQLite)
				convey.So(cfg.Judges, convey.ShouldResemble, []config.Judge{
					{Name: "Justice A", Level: "Senior"},
					{Name: "Justice B", Level: "Junior"},
				})
				convey.So(cfg.Weights.Case, convey.ShouldEqual, 45)
				convey.So(cfg.Weights.Age, convey.ShouldEqual, 0)
				convey.So(cfg.CaseFold, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			path := writeConfigFile(t, `
addr: ":9090"
capacity: 2
adjournment_rate: 0.5
dataset_path: "cases.csv"
judges:
  - name: "Justice X"
    level: "Senior"
  - name: "Justice Y"
    level: "Mid"
`)
			_ = os.Setenv("DOCKET_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the file and replace the roster", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.Capacity, convey.ShouldEqual, 2)
				convey.So(cfg.AdjournmentRate, convey.ShouldEqual, 0.5)
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "cases.csv")
				convey.So(cfg.Judges, convey.ShouldResemble, []config.Judge{
					{Name: "Justice X", Level: "Senior"},
					{Name: "Justice Y", Level: "Mid"},
				})
			})

			convey.Convey("And env vars take precedence over the file", func() {
				_ = os.Setenv("DOCKET_ADDR", ":7070")

				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.Capacity, convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("DOCKET_CONFIG", "/non/existent/docket.yaml")

			_, err := config.Load(ctx)

			convey.Convey("Then a load error is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the YAML is malformed", func() {
			_ = os.Setenv("DOCKET_CONFIG", writeConfigFile(t, "addr: [unclosed"))

			_, err := config.Load(ctx)

			convey.Convey("Then a load error is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the loaded settings are invalid", func() {
			_ = os.Setenv("DOCKET_ADJOURNMENT_RATE", "2")

			_, err := config.Load(ctx)

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading an explicit file", func() {
			cfg, err := config.LoadFile(ctx, writeConfigFile(t, "capacity: 7\n"))

			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Capacity, convey.ShouldEqual, 7)
		})
	})
}
