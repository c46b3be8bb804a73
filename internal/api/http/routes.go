package httpapi

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/THMSCMPG/AURA-MF/internal/dashboard"
	"github.com/THMSCMPG/AURA-MF/internal/mailer"
	"github.com/THMSCMPG/AURA-MF/internal/panel"
	"github.com/THMSCMPG/AURA-MF/internal/render"
	"github.com/THMSCMPG/AURA-MF/internal/store"
)

// Version reported by the health endpoint.
const Version = "1.0.0"

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, svc *panel.Service, dash *dashboard.State, mail *mailer.Mailer) {
	app.Get("/", func(c *fiber.Ctx) error {
		return handleIndex(c, dash, mail)
	})

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   Version,
		})
	})

	api.Post("/simulate", func(c *fiber.Ctx) error {
		return handleSimulate(c, svc)
	})

	api.Get("/parameters/default", func(c *fiber.Ctx) error {
		return c.JSON(panel.DefaultParameters().Map())
	})

	api.Get("/runs/:id", func(c *fiber.Ctx) error {
		return handleGetRun(c, svc)
	})

	api.Get("/runs/:id/history", func(c *fiber.Ctx) error {
		return handleRunHistory(c, svc)
	})

	api.Get("/dashboard", func(c *fiber.Ctx) error {
		return c.JSON(dash.Sample())
	})

	api.Post("/contact", func(c *fiber.Ctx) error {
		return handleContact(c, mail)
	})
}

// simulateRequest carries the optional parameter overrides of one
// simulation request. Absent keys keep their nominal value; grid shape,
// dt and step count are fixed for the public API.
type simulateRequest struct {
	SolarIrradiance     *float64 `json:"solar_irradiance"`
	AmbientTemperature  *float64 `json:"ambient_temperature"`
	WindSpeed           *float64 `json:"wind_speed"`
	CellEfficiency      *float64 `json:"cell_efficiency"`
	ThermalConductivity *float64 `json:"thermal_conductivity"`
	Absorptivity        *float64 `json:"absorptivity"`
	Emissivity          *float64 `json:"emissivity"`
}

func (r simulateRequest) overrides() map[string]float64 {
	m := make(map[string]float64)
	set := func(key string, v *float64) {
		if v != nil {
			m[key] = *v
		}
	}
	set("solar_irradiance", r.SolarIrradiance)
	set("ambient_temperature", r.AmbientTemperature)
	set("wind_speed", r.WindSpeed)
	set("cell_efficiency", r.CellEfficiency)
	set("thermal_conductivity", r.ThermalConductivity)
	set("absorptivity", r.Absorptivity)
	set("emissivity", r.Emissivity)
	return m
}

func handleSimulate(c *fiber.Ctx, svc *panel.Service) error {
	var req simulateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}

	params, err := panel.NewParameterSet(req.overrides())
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	run, err := svc.Simulate(c.UserContext(), params)
	if err != nil {
		var compErr *panel.ComputationError
		if errors.As(err, &compErr) {
			log.Printf("simulate: %v", compErr)
			return fiber.NewError(fiber.StatusInternalServerError, "simulation failed")
		}
		var valErr *panel.ValidationError
		if errors.As(err, &valErr) {
			return fiber.NewError(fiber.StatusBadRequest, valErr.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "simulation failed")
	}

	viz, err := render.HeatmapBase64(run.Result.TemperatureField, run.Result.PowerField)
	if err != nil {
		log.Printf("simulate: render failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render result fields")
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"run_id":        run.ID,
		"results":       run.Result,
		"visualization": viz,
		"parameters":    run.Params.Map(),
	})
}

func handleGetRun(c *fiber.Ctx, svc *panel.Service) error {
	run, err := svc.GetRun(c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "no run with requested id")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch run")
	}

	return c.JSON(fiber.Map{
		"run_id":     run.ID,
		"created_at": run.CreatedAt,
		"results":    run.Result,
		"parameters": run.Params.Map(),
	})
}

func handleRunHistory(c *fiber.Ctx, svc *panel.Service) error {
	run, err := svc.GetRun(c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "no run with requested id")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch run")
	}

	return c.JSON(fiber.Map{
		"run_id":    run.ID,
		"snapshots": run.Result.Snapshots,
	})
}

// contactRequest is the contact-form payload. WebsiteHP is a honeypot:
// bots fill it, humans never see it.
type contactRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Message   string `json:"message" validate:"required,min=10"`
	WebsiteHP string `json:"website_hp"`
}

func handleContact(c *fiber.Ctx, mail *mailer.Mailer) error {
	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "no data provided")
	}

	// Honeypot hit: pretend success without doing anything.
	if req.WebsiteHP != "" {
		return c.JSON(fiber.Map{"status": "success", "message": "Message received"})
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid input fields")
	}

	if err := mail.SendContact(c.UserContext(), req.Name, req.Email, req.Message); err != nil {
		log.Printf("contact: mail delivery failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "mail server error")
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Email sent!"})
}

func handleIndex(c *fiber.Ctx, dash *dashboard.State, mail *mailer.Mailer) error {
	mailStatus := "Missing Credentials"
	if mail.Configured() {
		mailStatus = "Configured"
	}

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>AURA-MF Dashboard API</title></head>
<body style="font-family: sans-serif; background: #2d3436; color: white; padding: 40px;">
    <h1>AURA-MF API Online</h1>
    <p>Simulation Time: %.1fs</p>
    <p>Email Status: %s</p>
</body>
</html>
`, dash.SimTime(), mailStatus)

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}
