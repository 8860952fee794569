package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/abdulachik/reelsmith/internal/captions"
	"github.com/abdulachik/reelsmith/internal/db"
	"github.com/abdulachik/reelsmith/internal/history"
	"github.com/abdulachik/reelsmith/internal/prompt"
	"github.com/abdulachik/reelsmith/internal/uploader"
	"github.com/abdulachik/reelsmith/internal/video"
	"github.com/abdulachik/reelsmith/internal/workflow"
	"github.com/gin-gonic/gin"
)

type scriptResponse struct {
	workflow.State
	Markdown string `json:"markdown"`
}

func (s *Server) createScript(c *gin.Context) {
	if s.deps.Scripts == nil {
		unavailable(c, "script generation")
		return
	}

	var req prompt.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	req = NormalizeRequest(req)
	if err := ValidateRequest(req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	state := s.deps.Scripts.Run(c.Request.Context(), req)
	status := http.StatusOK
	if state.Failed() {
		status = http.StatusBadGateway
	}
	c.JSON(status, scriptResponse{State: state, Markdown: workflow.Format(state)})
}

type captionResponse struct {
	Options []string `json:"options"`
	Error   string   `json:"error,omitempty"`
}

func (s *Server) createCaptions(c *gin.Context) {
	if s.deps.Captions == nil {
		unavailable(c, "caption generation")
		return
	}

	var cc captions.Context
	if err := c.ShouldBindJSON(&cc); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	res := s.deps.Captions.Options(c.Request.Context(), cc)
	resp := captionResponse{Options: res.Options}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

type hashtagsResponse struct {
	Hashtags []string `json:"hashtags"`
	Error    string   `json:"error,omitempty"`
}

func (s *Server) createHashtags(c *gin.Context) {
	if s.deps.Captions == nil {
		unavailable(c, "hashtag generation")
		return
	}

	var cc captions.Context
	if err := c.ShouldBindJSON(&cc); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	res := s.deps.Captions.Hashtags(c.Request.Context(), cc)
	resp := hashtagsResponse{Hashtags: res.Tags}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

type videoRequest struct {
	Script        string         `json:"script" binding:"required"`
	Title         string         `json:"title"`
	Request       prompt.Request `json:"request"`
	Voice         string         `json:"voice"`
	MusicStyle    string         `json:"music_style"`
	SaveToHistory bool           `json:"save_to_history"`
}

type videoResponse struct {
	video.Result
	Reel *history.Reel `json:"reel,omitempty"`
}

func (s *Server) createVideo(c *gin.Context) {
	if s.deps.Videos == nil {
		unavailable(c, "video provider")
		return
	}

	var req videoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	res, err := s.deps.Videos.Generate(ctx, video.Request{
		Script:          req.Script,
		ProductName:     req.Request.ProductName,
		Platforms:       req.Request.Platforms,
		AspectRatios:    req.Request.AspectRatios,
		DurationSeconds: req.Request.EffectiveDuration(),
		Voice:           req.Voice,
		MusicStyle:      req.MusicStyle,
	})
	if err != nil {
		abort(c, http.StatusBadGateway, err)
		return
	}

	resp := videoResponse{Result: res}
	if req.SaveToHistory && res.Status == video.StatusSuccess && res.VideoURL != "" && s.deps.Reels != nil {
		title := req.Title
		if title == "" {
			title = req.Request.ProductName
		}
		reel, err := s.deps.Reels.SaveVideo(ctx, title, res.VideoURL, history.Meta{
			Script:      req.Script,
			ProductName: req.Request.ProductName,
			Platforms:   req.Request.Platforms,
		})
		switch {
		case errors.Is(err, history.ErrUnavailable):
		case err != nil:
			abort(c, http.StatusInternalServerError, err)
			return
		default:
			resp.Reel = &reel
		}
	}

	c.JSON(http.StatusOK, resp)
}

type uploadRequest struct {
	ReelID    string   `json:"reel_id"`
	Platforms []string `json:"platforms" binding:"required,min=1"`
	uploader.Content
}

type uploadResponse struct {
	Results []uploader.Result `json:"results"`
}

func (s *Server) createUploads(c *gin.Context) {
	if s.deps.Publisher == nil {
		unavailable(c, "uploader")
		return
	}

	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Video) == "" {
		abort(c, http.StatusBadRequest, errors.New("video is required"))
		return
	}

	ctx := c.Request.Context()
	results := s.deps.Publisher.UploadAll(ctx, req.Platforms, req.Content)
	if s.deps.Record != nil {
		if err := s.deps.Record(ctx, req.ReelID, results); err != nil {
			abort(c, http.StatusInternalServerError, err)
			return
		}
	}

	c.JSON(http.StatusOK, uploadResponse{Results: results})
}

func (s *Server) listReels(c *gin.Context) {
	if s.deps.Reels == nil {
		c.JSON(http.StatusOK, gin.H{"reels": []history.Reel{}})
		return
	}

	limit, err := queryInt(c, "limit", history.DefaultLimit)
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	reels, err := s.deps.Reels.List(c.Request.Context(), limit)
	if err != nil {
		abort(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reels": reels})
}

func (s *Server) searchReels(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		abort(c, http.StatusBadRequest, errors.New("query parameter q is required"))
		return
	}
	if s.deps.Reels == nil {
		unavailable(c, "reel index")
		return
	}

	k, err := queryInt(c, "k", 5)
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	hits, err := s.deps.Reels.Search(c.Request.Context(), q, k)
	if errors.Is(err, history.ErrUnavailable) {
		unavailable(c, "reel index")
		return
	}
	if err != nil {
		abort(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hits": hits})
}

func (s *Server) getAnalytics(c *gin.Context) {
	if s.deps.Metrics == nil {
		unavailable(c, "analytics")
		return
	}

	limit, err := queryInt(c, "limit", 100)
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	metrics, err := s.deps.Metrics.Latest(ctx, c.Query("platform"), limit)
	if err != nil {
		abort(c, http.StatusInternalServerError, err)
		return
	}
	summary, err := s.deps.Metrics.Summary(ctx)
	if err != nil {
		abort(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"metrics": metrics, "summary": summaryJSON(summary)})
}

func (s *Server) refreshAnalytics(c *gin.Context) {
	if s.deps.Refresher == nil {
		unavailable(c, "analytics")
		return
	}

	report, err := s.deps.Refresher.RunOnce(c.Request.Context())
	if err != nil {
		abort(c, http.StatusBadGateway, err)
		return
	}
	if report == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "refresh already running"})
		return
	}

	errs := make(map[string]string, len(report.Errors))
	for name, err := range report.Errors {
		errs[name] = err.Error()
	}
	c.JSON(http.StatusOK, gin.H{"stored": len(report.Metrics), "errors": errs})
}

func (s *Server) healthz(c *gin.Context) {
	if s.deps.Health == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	status, code := "ok", http.StatusOK
	if !s.deps.Health.IsOverallHealthy() {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status, "components": s.deps.Health.GetAllStatuses()})
}

type platformSummary struct {
	Platform string `json:"platform"`
	Posts    int64  `json:"posts"`
	Likes    int64  `json:"likes"`
	Comments int64  `json:"comments"`
	Views    int64  `json:"views"`
	Shares   int64  `json:"shares"`
}

func summaryJSON(rows []db.SummarizeMetricsRow) []platformSummary {
	out := make([]platformSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, platformSummary(r))
	}
	return out
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.New(key + " must be a positive integer")
	}
	return n, nil
}
