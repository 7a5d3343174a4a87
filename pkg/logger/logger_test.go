package logger_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"watchtime/pkg/logger"
)

func TestLogger(t *testing.T) {
	convey.Convey("Given a text logger at info level", t, func() {
		var buf bytes.Buffer
		log := logger.New(&buf, "info")
		ctx := context.Background()

		convey.Convey("When logging with fields on a named child", func() {
			log.Named("loader").Info(ctx, "records loaded", logger.Int("rows", 5), logger.Error(errors.New("boom")))

			convey.Convey("Then the entry carries the component and fields", func() {
				out := buf.String()
				convey.So(out, convey.ShouldContainSubstring, "records loaded")
				convey.So(out, convey.ShouldContainSubstring, "component=loader")
				convey.So(out, convey.ShouldContainSubstring, "rows=5")
				convey.So(out, convey.ShouldContainSubstring, "error=boom")
			})
		})

		convey.Convey("When logging below the configured level", func() {
			log.Debug(ctx, "hidden")

			convey.Convey("Then nothing is written", func() {
				convey.So(buf.Len(), convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When using With", func() {
			log.With(logger.String("run_id", "abc")).Warn(ctx, "careful")

			convey.Convey("Then the persistent field is attached", func() {
				convey.So(buf.String(), convey.ShouldContainSubstring, "run_id=abc")
			})
		})
	})

	convey.Convey("Given level strings", t, func() {
		convey.So(logger.ParseLevel("DEBUG"), convey.ShouldEqual, slog.LevelDebug)
		convey.So(logger.ParseLevel("warning"), convey.ShouldEqual, slog.LevelWarn)
		convey.So(logger.ParseLevel("error"), convey.ShouldEqual, slog.LevelError)
		convey.So(logger.ParseLevel("nonsense"), convey.ShouldEqual, slog.LevelInfo)
	})

	convey.Convey("Given no Init call", t, func() {
		convey.Convey("Then Get returns a usable logger", func() {
			convey.So(func() { logger.Get().Info(context.Background(), "x") }, convey.ShouldNotPanic)
		})
	})

	convey.Convey("Given a process-wide logger installed by Init", t, func() {
		var buf bytes.Buffer
		installed := logger.Init(&buf, "debug")

		convey.Convey("Then Get returns it", func() {
			convey.So(logger.Get(), convey.ShouldEqual, installed)
		})

		convey.Convey("Then Named children write through it at its level", func() {
			logger.Named("dataprep").Debug(context.Background(), "rows dropped", logger.Int("rows", 2))
			out := buf.String()
			convey.So(out, convey.ShouldContainSubstring, "component=dataprep")
			convey.So(out, convey.ShouldContainSubstring, "rows=2")
		})
	})
}
