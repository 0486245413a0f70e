package http

import (
	"errors"
	"net/http"
	"time"

	"post-composer/pkg/logger"
	"post-composer/pkg/middleware"
	"post-composer/services/composer/internal/entity"
	"post-composer/services/composer/internal/upload"
	"post-composer/services/composer/internal/usecase"

	"github.com/gin-gonic/gin"
)

// UnauthenticatedMessage is the alert shown when an anonymous user submits.
const UnauthenticatedMessage = "You need to be logged in to create a post."

type ComposerHandler struct {
	composerUseCase usecase.ComposerUseCase
	logger          *logger.Logger
}

func NewComposerHandler(composerUseCase usecase.ComposerUseCase, logger *logger.Logger) *ComposerHandler {
	return &ComposerHandler{
		composerUseCase: composerUseCase,
		logger:          logger,
	}
}

type DraftResponse struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Media     *string `json:"media"`
	Mode      string  `json:"mode"`
	Markdown  bool    `json:"markdown"`
	Preview   string  `json:"preview,omitempty"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
}

type UpdateTitleRequest struct {
	Title string `json:"title"`
}

type UpdateContentRequest struct {
	Content string `json:"content"`
}

type SelectMediaRequest struct {
	Media *string `json:"media"`
}

func (h *ComposerHandler) formatDraftResponse(draft *entity.Draft, preview string) DraftResponse {
	response := DraftResponse{
		Title:    draft.Title,
		Content:  draft.Content,
		Media:    draft.Media,
		Mode:     string(draft.Mode()),
		Markdown: draft.Markdown,
		Preview:  preview,
	}
	if !draft.UpdatedAt.IsZero() {
		response.UpdatedAt = draft.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return response
}

// GetDraft godoc
// @Summary      Get the composer draft
// @Description  Returns the draft of the current session. In markdown mode the rendered preview is included.
// @Tags         composer
// @Produce      json
// @Success      200  {object}  DraftResponse
// @Failure      500  {object}  map[string]string
// @Router       /composer/draft [get]
func (h *ComposerHandler) GetDraft(c *gin.Context) {
	sessionID := c.GetString(middleware.SessionIDKey)

	draft, err := h.composerUseCase.GetDraft(c.Request.Context(), sessionID)
	if err != nil {
		h.logger.Error("Failed to load draft %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load draft"})
		return
	}

	preview := ""
	if draft.Markdown {
		preview, err = h.composerUseCase.RenderPreview(draft)
		if err != nil {
			h.logger.Warn("Failed to render preview for draft %s: %v", sessionID, err)
		}
	}

	c.JSON(http.StatusOK, h.formatDraftResponse(draft, preview))
}

// UpdateTitle godoc
// @Summary      Set the post title
// @Tags         composer
// @Accept       json
// @Produce      json
// @Param        request body UpdateTitleRequest true "Title"
// @Success      200  {object}  DraftResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /composer/draft/title [put]
func (h *ComposerHandler) UpdateTitle(c *gin.Context) {
	var req UpdateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID := c.GetString(middleware.SessionIDKey)
	draft, err := h.composerUseCase.UpdateTitle(c.Request.Context(), sessionID, req.Title)
	if err != nil {
		h.logger.Error("Failed to update title of draft %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save draft"})
		return
	}

	c.JSON(http.StatusOK, h.formatDraftResponse(draft, ""))
}

// UpdateContent godoc
// @Summary      Set the post content
// @Description  Stores the editor content. In rich-text mode the first h2 becomes the title and the first image the media.
// @Tags         composer
// @Accept       json
// @Produce      json
// @Param        request body UpdateContentRequest true "Content"
// @Success      200  {object}  DraftResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /composer/draft/content [put]
func (h *ComposerHandler) UpdateContent(c *gin.Context) {
	var req UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID := c.GetString(middleware.SessionIDKey)
	draft, err := h.composerUseCase.UpdateContent(c.Request.Context(), sessionID, req.Content)
	if err != nil {
		h.logger.Error("Failed to update content of draft %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save draft"})
		return
	}

	c.JSON(http.StatusOK, h.formatDraftResponse(draft, ""))
}

// SelectMedia godoc
// @Summary      Set the post media
// @Description  Sets the media reference. A null media clears it.
// @Tags         composer
// @Accept       json
// @Produce      json
// @Param        request body SelectMediaRequest true "Media"
// @Success      200  {object}  DraftResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /composer/draft/media [put]
func (h *ComposerHandler) SelectMedia(c *gin.Context) {
	var req SelectMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID := c.GetString(middleware.SessionIDKey)
	draft, err := h.composerUseCase.SelectMedia(c.Request.Context(), sessionID, req.Media)
	if err != nil {
		h.logger.Error("Failed to update media of draft %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save draft"})
		return
	}

	c.JSON(http.StatusOK, h.formatDraftResponse(draft, ""))
}

// ToggleMode godoc
// @Summary      Toggle markdown mode
// @Description  Switches between rich-text and markdown. Content is kept as is.
// @Tags         composer
// @Produce      json
// @Success      200  {object}  DraftResponse
// @Failure      500  {object}  map[string]string
// @Router       /composer/draft/mode [post]
func (h *ComposerHandler) ToggleMode(c *gin.Context) {
	sessionID := c.GetString(middleware.SessionIDKey)

	draft, err := h.composerUseCase.ToggleMode(c.Request.Context(), sessionID)
	if err != nil {
		h.logger.Error("Failed to toggle mode of draft %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save draft"})
		return
	}

	c.JSON(http.StatusOK, h.formatDraftResponse(draft, ""))
}

// Preview godoc
// @Summary      Render the markdown preview
// @Tags         composer
// @Produce      html
// @Success      200  {string}  string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /composer/preview [get]
func (h *ComposerHandler) Preview(c *gin.Context) {
	sessionID := c.GetString(middleware.SessionIDKey)

	html, err := h.composerUseCase.Preview(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, entity.ErrNotMarkdownMode) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to render preview for draft %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render preview"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// EditorConfig godoc
// @Summary      Rich-text editor configuration
// @Tags         composer
// @Produce      json
// @Success      200  {object}  entity.EditorConfig
// @Router       /composer/editor-config [get]
func (h *ComposerHandler) EditorConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.composerUseCase.EditorConfig())
}

// UploadImage godoc
// @Summary      Upload an editor image
// @Description  Stores the image in object storage and returns its URL. The URL also becomes the draft media.
// @Tags         composer
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        upload formData file true "Image file"
// @Success      200  {object}  upload.Result
// @Failure      400  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /composer/uploads [post]
func (h *ComposerHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("upload")
	if err != nil {
		c.JSON(http.StatusBadRequest, uploadError("An image file is required"))
		return
	}

	sessionID := c.GetString(middleware.SessionIDKey)
	result, err := h.composerUseCase.UploadImage(c.Request.Context(), sessionID, upload.MultipartLoader{Header: file})
	if errors.Is(err, upload.ErrInvalidFileName) {
		c.JSON(http.StatusBadRequest, uploadError("The image file needs a name"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, uploadError("Couldn't upload file: "+file.Filename))
		return
	}

	c.JSON(http.StatusOK, result)
}

// Submit godoc
// @Summary      Submit the draft as a post
// @Description  Appends the draft to the user's post list and clears the form.
// @Tags         composer
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  entity.Post
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /composer/submit [post]
func (h *ComposerHandler) Submit(c *gin.Context) {
	sessionID := c.GetString(middleware.SessionIDKey)
	userID := c.GetString(middleware.UserIDKey)

	post, err := h.composerUseCase.Submit(c.Request.Context(), sessionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": UnauthenticatedMessage})
		case errors.Is(err, entity.ErrPostListConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Your post list changed while submitting. Please try again."})
		default:
			h.logger.Error("Failed to submit draft %s for user %s: %v", sessionID, userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		}
		return
	}

	c.JSON(http.StatusCreated, post)
}

func uploadError(message string) gin.H {
	return gin.H{"error": gin.H{"message": message}}
}
