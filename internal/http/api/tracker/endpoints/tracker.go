package endpoints

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/deenworks/qada/internal/http/api"
	"github.com/deenworks/qada/internal/http/api/tracker/packets"
	"github.com/deenworks/qada/internal/model"
	"github.com/deenworks/qada/internal/storage"
	"github.com/deenworks/qada/internal/tracker"
)

type TrackerController struct {
	svc     *tracker.Service
	archive storage.Storage
}

func newTrackerController(svc *tracker.Service, archive storage.Storage) *TrackerController {
	return &TrackerController{svc: svc, archive: archive}
}

// TrackerModule mounts all /tracker endpoints.
func TrackerModule(svc *tracker.Service, archive storage.Storage) api.Module {
	ctl := newTrackerController(svc, archive)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/tracker", ctl.getTracker)
		c.PUT("/tracker/prayers/:name/total", ctl.setTotal)
		c.PUT("/tracker/prayers/:name/target", ctl.setWeeklyTarget)
		c.POST("/tracker/prayers/:name/completions", ctl.recordCompletion)

		c.POST("/tracker/import", ctl.importDocument)
		c.Handle(http.MethodGet, "/tracker/export", ctl.exportDocument)
		c.POST("/tracker/summary", ctl.sendSummary)
	})
}

func prayerParam(ctx *gin.Context) (model.PrayerName, *api.APIError) {
	name, ok := model.ParsePrayerName(ctx.Param("name"))
	if !ok {
		return "", &api.APIError{Code: http.StatusNotFound, Message: fmt.Sprintf("unknown prayer %q", ctx.Param("name"))}
	}
	return name, nil
}

func (t *TrackerController) stateResponse(ctx *gin.Context) packets.TrackerResponse {
	state := t.svc.State(ctx)
	out := packets.TrackerResponse{
		Prayers:       make([]packets.PrayerResponse, 0, len(state.Prayers)),
		WeekStartDate: state.WeekStartDate.Format(time.RFC3339),
		DaysLeft:      state.DaysLeft,
		Session:       state.Session,
		SyncStatus:    string(state.SyncStatus),
	}
	for _, p := range state.Prayers {
		out.Prayers = append(out.Prayers, packets.PrayerResponse{
			Name:              string(p.Name),
			TotalQada:         p.Counters.TotalQada,
			WeeklyTarget:      p.Counters.WeeklyTarget,
			CompletedThisWeek: p.Counters.CompletedThisWeek,
			Progress:          p.Progress,
			BehindTarget:      p.Behind,
		})
	}
	return out
}

// GET /api/tracker
func (t *TrackerController) getTracker(ctx *gin.Context) (any, *api.APIError) {
	return t.stateResponse(ctx), nil
}

// PUT /api/tracker/prayers/:name/total
func (t *TrackerController) setTotal(ctx *gin.Context) (any, *api.APIError) {
	name, apiErr := prayerParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.CounterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := t.svc.SetTotal(ctx, name, request.Value); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	return t.stateResponse(ctx), nil
}

// PUT /api/tracker/prayers/:name/target
func (t *TrackerController) setWeeklyTarget(ctx *gin.Context) (any, *api.APIError) {
	name, apiErr := prayerParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.CounterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := t.svc.SetWeeklyTarget(ctx, name, request.Value); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	return t.stateResponse(ctx), nil
}

// POST /api/tracker/prayers/:name/completions
func (t *TrackerController) recordCompletion(ctx *gin.Context) (any, *api.APIError) {
	name, apiErr := prayerParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.CompletionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := t.svc.RecordCompletion(ctx, name, request.Count); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	return t.stateResponse(ctx), nil
}

// POST /api/tracker/import
func (t *TrackerController) importDocument(ctx *gin.Context) (any, *api.APIError) {
	data, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "could not read import document"}
	}
	if err := t.svc.Import(ctx, data); err != nil {
		if errors.Is(err, tracker.ErrImportFormat) {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	return t.stateResponse(ctx), nil
}

// GET /api/tracker/export
func (t *TrackerController) exportDocument(ctx *gin.Context) {
	filename, data, err := t.svc.Export(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Archive a dated copy; the download itself never waits on it.
	if t.archive != nil {
		go func() {
			if _, err := t.archive.SaveSnapshot(filename, data); err != nil {
				log.Error().Err(err).Str("filename", filename).Msg("export archive failed")
			}
		}()
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "application/json", data)
}

// POST /api/tracker/summary
func (t *TrackerController) sendSummary(ctx *gin.Context) (any, *api.APIError) {
	var request packets.SummaryRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
		}
	}
	if err := t.svc.MaybeSendWeeklySummary(ctx, request.Force); err != nil {
		return nil, &api.APIError{Code: http.StatusBadGateway, Message: err.Error()}
	}
	return gin.H{"status": "sent"}, nil
}
