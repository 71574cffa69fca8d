package api

import (
	"net/http"
	"strconv"

	"lotto645/apperrors"
	"lotto645/domain/entities"
	"lotto645/domain/interfaces"
	"lotto645/events"

	"github.com/gin-gonic/gin"
)

type rangeFilterRequest struct {
	Enabled  bool   `json:"enabled"`
	Range    string `json:"range"`
	MinCount int    `json:"min_count"`
	MaxCount int    `json:"max_count"`
}

type advancedOptionsRequest struct {
	ConsecutiveMode        string              `json:"consecutive_mode"`
	LastDigitMode          string              `json:"last_digit_mode"`
	RangeFilter            *rangeFilterRequest `json:"range_filter"`
	MaxPreviousDrawOverlap *int                `json:"max_previous_draw_overlap"`
}

type drawRequest struct {
	ExcludeMode    string                  `json:"exclude_mode"`
	ExcludeNumbers []int                   `json:"exclude_numbers"`
	FixedNumbers   []int                   `json:"fixed_numbers"`
	ExcludeDraws   [][]int                 `json:"exclude_draws"`
	Count          *int                    `json:"count"`
	Advanced       *advancedOptionsRequest `json:"advanced_options"`
}

func (r *drawRequest) toGenerateRequest() interfaces.GenerateRequest {
	mode := r.ExcludeMode
	if mode == "" {
		mode = string(entities.ExcludeModeNone)
	}
	req := interfaces.GenerateRequest{
		ExcludeMode:    entities.ExcludeMode(mode),
		ExcludeNumbers: r.ExcludeNumbers,
		FixedNumbers:   r.FixedNumbers,
		ExcludeDraws:   r.ExcludeDraws,
	}
	if r.Advanced != nil {
		adv := &interfaces.AdvancedOptions{
			Consecutive:        entities.ConsecutiveMode(r.Advanced.ConsecutiveMode),
			LastDigit:          entities.LastDigitMode(r.Advanced.LastDigitMode),
			MaxPreviousOverlap: r.Advanced.MaxPreviousDrawOverlap,
		}
		if r.Advanced.RangeFilter != nil {
			adv.Range = &interfaces.RangeFilter{
				Enabled:  r.Advanced.RangeFilter.Enabled,
				Bucket:   entities.RangeBucket(r.Advanced.RangeFilter.Range),
				MinCount: r.Advanced.RangeFilter.MinCount,
				MaxCount: r.Advanced.RangeFilter.MaxCount,
			}
		}
		req.Advanced = adv
	}
	return req
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleDraw(c *gin.Context) {
	var body drawRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, apperrors.NewValidation(
			"Invalid request body", "body", err.Error()))
		return
	}

	req := body.toGenerateRequest()

	// An absent or zero count means a single draw.
	if body.Count == nil || *body.Count == 0 {
		numbers, err := s.generator.Generate(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		respondSuccess(c, http.StatusOK, gin.H{"numbers": numbers})
		return
	}

	draws, err := s.generator.GenerateMany(c.Request.Context(), req, *body.Count)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"draws": draws})
}

func (s *Server) handleOverlap(c *gin.Context) {
	report, err := s.overlap.Analyze(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, report)
}

func (s *Server) handleFirstPlaceOverlap(c *gin.Context) {
	report, err := s.firstPlace.Analyze(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, report)
}

func (s *Server) handleFrequency(c *gin.Context) {
	var recentN *int
	if raw := c.Query("recent_n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, apperrors.NewValidation(
				"Invalid recent_n", "recent_n", "Must be an integer"))
			return
		}
		recentN = &parsed
	}

	percent := 0.0
	if raw := c.Query("percent"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(c, apperrors.NewValidation(
				"Invalid percent", "percent", "Must be a number"))
			return
		}
		percent = parsed
	}

	report, err := s.frequency.Analyze(c.Request.Context(), recentN, percent)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, report)
}

type lottoResultResponse struct {
	DrawNo  int64  `json:"draw_no"`
	Numbers [6]int `json:"numbers"`
	Bonus   int    `json:"bonus_number"`
}

func (s *Server) handleListResults(c *gin.Context) {
	records, err := s.repo.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]lottoResultResponse, 0, len(records))
	for _, record := range records {
		results = append(results, lottoResultResponse{
			DrawNo:  record.DrawNo,
			Numbers: record.Numbers,
			Bonus:   record.Bonus,
		})
	}
	respondSuccess(c, http.StatusOK, gin.H{
		"total":   len(results),
		"results": results,
	})
}

func (s *Server) handleLatestResult(c *gin.Context) {
	record, err := s.repo.GetLatest(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if record == nil {
		respondError(c, &apperrors.NotFoundError{Message: "the archive is empty"})
		return
	}
	respondSuccess(c, http.StatusOK, lottoResultResponse{
		DrawNo:  record.DrawNo,
		Numbers: record.Numbers,
		Bonus:   record.Bonus,
	})
}

type ingestRequest struct {
	DrawNo  int64 `json:"draw_no"`
	Numbers []int `json:"numbers"`
	Bonus   int   `json:"bonus_number"`
}

func (s *Server) handleIngestResult(c *gin.Context) {
	var body ingestRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, apperrors.NewValidation(
			"Invalid request body", "body", err.Error()))
		return
	}
	if len(body.Numbers) != entities.DrawSize {
		respondError(c, apperrors.NewValidation(
			"Invalid numbers", "numbers", "Exactly 6 numbers required"))
		return
	}

	record := &entities.DrawRecord{
		DrawNo: body.DrawNo,
		Bonus:  body.Bonus,
	}
	copy(record.Numbers[:], body.Numbers)

	if err := record.Validate(); err != nil {
		respondError(c, apperrors.NewValidation(
			"Invalid draw record", "body", err.Error()))
		return
	}

	if err := s.repo.Create(c.Request.Context(), record); err != nil {
		respondError(c, err)
		return
	}

	s.publisher.Publish(c.Request.Context(), events.DrawIngestedEvent{
		DrawNo:  record.DrawNo,
		Numbers: append([]int(nil), body.Numbers...),
		Bonus:   record.Bonus,
	})

	respondSuccess(c, http.StatusCreated, lottoResultResponse{
		DrawNo:  record.DrawNo,
		Numbers: record.Numbers,
		Bonus:   record.Bonus,
	})
}
