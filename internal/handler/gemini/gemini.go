package gemini

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"time"

	"gemini-users/internal/api"
	"gemini-users/internal/cache"
	"gemini-users/internal/database"
	"gemini-users/internal/genai"
	"gemini-users/internal/service"
	"gemini-users/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// responseTTL 快取生成結果的保存時間
const responseTTL = time.Hour

var (
	generateText     = service.GenerateText
	answerWithSearch = service.AnswerWithSearch
)

func cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "gemini:prompt:" + hex.EncodeToString(sum[:])
}

// writeError 將上游錯誤轉為對應的 HTTP 回應
func writeError(c echo.Context, err error) error {
	var statusErr *genai.StatusError
	if errors.As(err, &statusErr) {
		return c.JSON(statusErr.StatusCode, api.ErrorResponse{Message: "Gemini API error: " + statusErr.Body})
	}
	return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Unexpected error: " + err.Error()})
}

// @Summary     Generate text
// @Description 將 prompt 轉送給 Gemini API 並回傳生成的文字，結果會快取一小時
// @Tags        gemini
// @Accept      json
// @Produce     json
// @Param       body body api.GenerateRequest true "Prompt"
// @Success     200 {object} api.GenerateResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     422 {object} api.ErrorResponse "驗證失敗"
// @Failure     500 {object} api.ErrorResponse
// @Router      /gemini [post]
func GenerateHandler(client genai.Client, rdb cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.GenerateRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: err.Error()})
		}

		ctx := c.Request().Context()
		key := cacheKey(req.Prompt)

		// 快取命中直接回覆，redis 出錯視同未命中
		if cached, err := rdb.Get(ctx, key).Result(); err == nil {
			return c.JSON(http.StatusOK, api.GenerateResponse{Prompt: req.Prompt, Response: cached})
		} else if !errors.Is(err, redis.Nil) {
			c.Logger().Warnf("cache get failed: %v", err)
		}

		text, err := generateText(ctx, client, req.Prompt)
		if err != nil {
			return writeError(c, err)
		}

		// 快取寫入交給 worker pool，不阻塞回應
		// request context 在回應後即失效，寫入需要自己的 context
		wp.Submit(func() {
			setCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := rdb.Set(setCtx, key, text, responseTTL).Err(); err != nil {
				log.Printf("cache set failed: %v", err)
			}
		})

		return c.JSON(http.StatusOK, api.GenerateResponse{Prompt: req.Prompt, Response: text})
	}
}

// @Summary     Generate text with user search
// @Description 轉送 prompt 給 Gemini API，並允許模型透過 function calling 搜尋本地使用者
// @Tags        gemini
// @Accept      json
// @Produce     json
// @Param       body body api.GenerateRequest true "Prompt"
// @Success     200 {object} api.GenerateResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     422 {object} api.ErrorResponse "驗證失敗"
// @Failure     500 {object} api.ErrorResponse
// @Router      /gemini/user/search [post]
func SearchGenerateHandler(client genai.Client, db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.GenerateRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: err.Error()})
		}

		text, err := answerWithSearch(c.Request().Context(), client, db, req.Prompt)
		if err != nil {
			return writeError(c, err)
		}

		return c.JSON(http.StatusOK, api.GenerateResponse{Prompt: req.Prompt, Response: text})
	}
}
