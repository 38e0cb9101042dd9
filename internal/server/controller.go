package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/minhtran-ct/collab-view/internal/models"
	pkgmdw "github.com/minhtran-ct/collab-view/internal/server/middleware"
	"github.com/minhtran-ct/collab-view/internal/usecase"
)

type Controller interface {
	CreateSession(c echo.Context) error
	DeleteSession(c echo.Context) error
	ListCollections(c echo.Context) error
	ListKeys(c echo.Context) error
	ListDocuments(c echo.Context) error
	GetDocument(c echo.Context) error
	SearchSent(c echo.Context) error
	SearchReceived(c echo.Context) error
	AddComment(c echo.Context) error
	FileComplaint(c echo.Context) error
	Health(c echo.Context) error
}

type controller struct {
	sessions   usecase.SessionUsecase
	browse     usecase.BrowseUsecase
	collabs    usecase.CollabUsecase
	comments   usecase.CommentUsecase
	complaints usecase.ComplaintUsecase
}

func NewController(
	sessions usecase.SessionUsecase,
	browse usecase.BrowseUsecase,
	collabs usecase.CollabUsecase,
	comments usecase.CommentUsecase,
	complaints usecase.ComplaintUsecase,
) Controller {
	return &controller{
		sessions:   sessions,
		browse:     browse,
		collabs:    collabs,
		comments:   comments,
		complaints: complaints,
	}
}

func (h *controller) CreateSession(c echo.Context) error {
	var creds models.Credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.sessions.Authenticate(c.Request().Context(), creds.Tenant, creds.Credential)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"token":  session.Token,
		"tenant": session.Tenant,
	})
}

func (h *controller) DeleteSession(c echo.Context) error {
	session := pkgmdw.SessionFromContext(c)
	h.sessions.Logout(session.Token)
	return c.NoContent(http.StatusNoContent)
}

func (h *controller) ListCollections(c echo.Context) error {
	session := pkgmdw.SessionFromContext(c)
	collections, err := h.browse.ListCollections(c.Request().Context(), session.Store)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"collections": collections})
}

func (h *controller) ListKeys(c echo.Context) error {
	session := pkgmdw.SessionFromContext(c)
	keys, err := h.browse.ListKeys(c.Request().Context(), session.Store, c.Param("collection"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"keys": keys})
}

func (h *controller) ListDocuments(c echo.Context) error {
	session := pkgmdw.SessionFromContext(c)
	listing, err := h.browse.ListDocuments(c.Request().Context(), session.Store, c.Param("collection"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

func (h *controller) GetDocument(c echo.Context) error {
	session := pkgmdw.SessionFromContext(c)
	doc, err := h.browse.GetDocument(c.Request().Context(), session.Store, c.Param("collection"), c.Param("key"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *controller) SearchSent(c echo.Context) error {
	var criteria models.SentCriteria
	if err := c.Bind(&criteria); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	session := pkgmdw.SessionFromContext(c)
	result, err := h.collabs.FindSent(c.Request().Context(), session.Store, criteria)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *controller) SearchReceived(c echo.Context) error {
	var criteria models.ReceivedCriteria
	if err := c.Bind(&criteria); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	session := pkgmdw.SessionFromContext(c)
	result, err := h.collabs.FindReceived(c.Request().Context(), session.Store, criteria)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

type addCommentRequest struct {
	Member string `json:"member" validate:"required,email"`
	Text   string `json:"text"`
}

func (h *controller) AddComment(c echo.Context) error {
	var req addCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session := pkgmdw.SessionFromContext(c)
	recordID := models.ObjectID(c.Param("id"))
	if err := h.comments.AddComment(c.Request().Context(), session.Store, recordID, req.Member, req.Text); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"status": "comment added"})
}

func (h *controller) FileComplaint(c echo.Context) error {
	var params models.ComplaintParams
	if err := c.Bind(&params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session := pkgmdw.SessionFromContext(c)
	id, err := h.complaints.FileComplaint(c.Request().Context(), session.Store, params)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"id_number": id})
}

func (h *controller) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "collab-view",
	})
}
