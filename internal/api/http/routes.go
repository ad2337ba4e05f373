package httpapi

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/seongmin-dev/kpx-smp-bot/internal/smp"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. The root and
// /health endpoints exist for hosting-platform liveness checks; the report
// endpoint runs the same pipeline the bot uses, for operators poking at the
// service without Telegram.
func RegisterRoutes(app *fiber.App, service *smp.Service, recorder smp.StatusRecorder, timezone *time.Location) {
	app.Get("/", func(c *fiber.Ctx) error {
		runs := fiber.Map{}
		for _, region := range []smp.Region{smp.RegionMainland, smp.RegionJeju} {
			if status, ok := recorder.Latest(region); ok {
				runs[string(region)] = status
			}
		}
		return c.JSON(fiber.Map{
			"status":    "OK",
			"service":   "kpx-smp-bot",
			"timestamp": time.Now().In(timezone).Format(time.RFC3339),
			"timezone":  timezone.String(),
			"schedule":  "Monday 09:00",
			"last_runs": runs,
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	v1 := app.Group("/api/v1")

	v1.Get("/smp/report", func(c *fiber.Ctx) error {
		req := reportQuery{
			Region: c.Query("region", string(smp.RegionMainland)),
			Filter: c.Query("filter"),
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), 75*time.Second)
		defer cancel()

		report, err := service.BuildReport(ctx, req.Filter, smp.Region(req.Region))
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "failed to fetch SMP data")
		}

		return c.JSON(fiber.Map{
			"region": req.Region,
			"filter": req.Filter,
			"report": report,
		})
	})
}

// reportQuery holds query parameters for the on-demand report endpoint.
type reportQuery struct {
	Region string `validate:"required,oneof=mainland jeju"`
	Filter string `validate:"omitempty,max=64"`
}
