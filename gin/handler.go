package gin

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/postcraft"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// generateRequest is the body of POST /api/generate.
type generateRequest struct {
	URL            string   `json:"url" binding:"omitempty,url,max=2048"`
	FallbackTitle  string   `json:"fallbackTitle" binding:"max=160"`
	CustomSummary  string   `json:"customSummary" binding:"max=8000"`
	Tone           string   `json:"tone" binding:"omitempty,oneof=professional casual enthusiastic authoritative playful"`
	CallToAction   string   `json:"callToAction" binding:"omitempty,oneof=readNow learnMore joinConversation subscribe contact"`
	Audience       string   `json:"audience" binding:"max=160"`
	CustomHashtags []string `json:"customHashtags" binding:"max=10,dive,max=60"`
}

// Issue describes one invalid request field.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message  string   `json:"message"`
	Issues   []Issue  `json:"issues,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// GenerateResponse is the body of a successful POST /api/generate.
type GenerateResponse struct {
	*postcraft.GenerationResult
	Warnings []string `json:"warnings"`
}

// Option is a selectable value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OptionsResponse is the body of GET /api/options.
type OptionsResponse struct {
	Tones         []Option             `json:"tones"`
	CallsToAction []Option             `json:"callsToAction"`
	Platforms     []postcraft.Platform `json:"platforms"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleOptions(c *gin.Context) {
	res := OptionsResponse{Platforms: s.Platforms}
	for _, t := range postcraft.Tones() {
		res.Tones = append(res.Tones, Option{Value: string(t), Label: t.Label()})
	}
	for _, cta := range postcraft.CallsToAction() {
		res.CallsToAction = append(res.CallsToAction, Option{Value: string(cta), Label: cta.Label()})
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleGenerate(c *gin.Context) {
	var body generateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, bindingError(err))
		return
	}

	res, err := s.Resolver.Resolve(c.Request.Context(), &postcraft.GenerateRequest{
		URL:           body.URL,
		FallbackTitle: body.FallbackTitle,
		Content:       body.CustomSummary,
		Tone:          postcraft.Tone(body.Tone),
		CallToAction:  postcraft.CallToAction(body.CallToAction),
		Audience:      body.Audience,
		Hashtags:      body.CustomHashtags,
	})
	if err != nil {
		var warnings []string
		if res != nil {
			warnings = res.Warnings
		}
		s.writeError(c, err, warnings)
		return
	}

	result, err := s.Generator.Generate(res.Input)
	if err != nil {
		s.writeError(c, err, res.Warnings)
		return
	}

	warnings := res.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	data, err := json.Marshal(GenerateResponse{GenerationResult: result, Warnings: warnings})
	if err != nil {
		s.writeError(c, err, nil)
		return
	}

	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(data))
	c.Header("ETag", etag)
	if matchETag(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (s *Server) writeError(c *gin.Context, err error, warnings []string) {
	code := postcraft.ErrorCode(err)
	if code == postcraft.EINTERNAL {
		s.Logger.Error("generate failed",
			"path", c.Request.URL.Path,
			"request_id", c.GetString(requestIDKey),
			"err", err,
		)
	}
	c.JSON(ErrorStatusCode(code), ErrorResponse{
		Message:  postcraft.ErrorMessage(err),
		Warnings: warnings,
	})
}

// ErrorStatusCode maps an application error code to an HTTP status.
func ErrorStatusCode(code string) int {
	switch code {
	case postcraft.EINVALID:
		return http.StatusBadRequest
	case postcraft.ENOTFOUND:
		return http.StatusNotFound
	case postcraft.EEMPTY, postcraft.EFETCH:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func bindingError(err error) ErrorResponse {
	res := ErrorResponse{Message: "Invalid request."}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		res.Issues = []Issue{{Field: "body", Message: "Request body must be a JSON object."}}
		return res
	}
	for _, fe := range verrs {
		res.Issues = append(res.Issues, Issue{Field: jsonField(fe), Message: issueMessage(fe)})
	}
	return res
}

// jsonField returns the JSON name of the failing field, e.g. customHashtags[2].
func jsonField(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		ns = rest
	}
	name, index, _ := strings.Cut(ns, "[")
	if index != "" {
		index = "[" + index
	}
	return fieldNames[name] + index
}

var fieldNames = map[string]string{
	"URL":            "url",
	"FallbackTitle":  "fallbackTitle",
	"CustomSummary":  "customSummary",
	"Tone":           "tone",
	"CallToAction":   "callToAction",
	"Audience":       "audience",
	"CustomHashtags": "customHashtags",
}

func issueMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "url":
		return "Must be a valid URL."
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ") + "."
	case "max":
		if fe.Kind().String() == "slice" {
			return "Must contain at most " + fe.Param() + " items."
		}
		return "Must be at most " + fe.Param() + " characters."
	}
	return "Is invalid."
}

func matchETag(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == etag || candidate == "*" {
			return true
		}
	}
	return false
}
