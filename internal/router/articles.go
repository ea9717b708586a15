package router

import (
	"context"
	"net/http"
	"strconv"

	"github.com/adaptivelearn/levelbook/internal/apperr"
	"github.com/adaptivelearn/levelbook/internal/domain"
	"github.com/adaptivelearn/levelbook/internal/storage"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Processor runs the ingestion pipeline for one submitted text.
type Processor interface {
	ProcessText(ctx context.Context, text, sourceURL string) (*domain.Article, error)
}

type ArticleRouter struct {
	e         *echo.Echo
	storage   storage.Storage
	processor Processor
}

func NewArticleRouter(e *echo.Echo, store storage.Storage, processor Processor) *ArticleRouter {
	return &ArticleRouter{
		e:         e,
		storage:   store,
		processor: processor,
	}
}

func (r *ArticleRouter) Bind() {
	r.e.POST("/articles/process", r.processHandler)
	r.e.GET("/articles", r.listHandler)
	r.e.GET("/articles/:id", r.getHandler)
	r.e.GET("/articles/:id/levels", r.levelsHandler)
	r.e.GET("/articles/:id/levels/:level", r.levelHandler)
	r.e.GET("/articles/:id/quiz", r.quizHandler)
	r.e.GET("/articles/:id/prompts", r.promptsHandler)
}

type processRequest struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

type processResponse struct {
	Success   bool            `json:"success"`
	ArticleID uuid.UUID       `json:"articleId"`
	Article   *domain.Article `json:"article"`
}

func (r *ArticleRouter) processHandler(c echo.Context) error {
	var req processRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	article, err := r.processor.ProcessText(c.Request().Context(), req.Text, req.URL)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, processResponse{
		Success:   true,
		ArticleID: article.ID,
		Article:   article,
	})
}

func (r *ArticleRouter) listHandler(c echo.Context) error {
	articles, err := r.storage.GetAllArticles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, articles)
}

func (r *ArticleRouter) getHandler(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	article, err := r.storage.GetArticle(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, article)
}

func (r *ArticleRouter) levelsHandler(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	levels, err := r.storage.GetReadingLevelsByArticle(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, levels)
}

func (r *ArticleRouter) levelHandler(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	level, err := strconv.Atoi(c.Param("level"))
	if err != nil {
		return apperr.NewValidation("level must be an integer")
	}

	rl, err := r.storage.GetReadingLevel(c.Request().Context(), id, level)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rl)
}

func (r *ArticleRouter) quizHandler(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	quiz, err := r.storage.GetQuizByArticle(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, quiz)
}

func (r *ArticleRouter) promptsHandler(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	prompts, err := r.storage.GetWritePromptsByArticle(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prompts)
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperr.NewValidationWrap("invalid article id", err)
	}
	return id, nil
}
