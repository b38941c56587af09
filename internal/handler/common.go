package handler // handler defines http handlers

import (
    "context"
    "log"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/volunteer-hub/internal/middleware"
    "github.com/iliyamo/volunteer-hub/internal/model"
    "github.com/iliyamo/volunteer-hub/internal/repository"
)

// reqCtx derives a bounded context for database calls from the request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
    return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// pathID parses a numeric :id style path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
    return strconv.ParseUint(c.Param(name), 10, 64)
}

// serverError logs the unexpected failure and returns a generic 500 body so
// internals never leak to clients.
func serverError(c echo.Context, err error) error {
    log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
    return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "server error"})
}

// currentUser is a local alias for the middleware accessor; nil means the
// request is anonymous (possible on OptionalAuth routes).
func currentUser(c echo.Context) *model.User {
    return middleware.CurrentUser(c)
}

// ----- response shaping -----
//
// Each endpoint shapes its own response explicitly instead of serializing
// repository rows, so the query shape and the wire shape can evolve
// independently and sensitive columns (password hashes) can never leak.

type userView struct {
    ID           uint64  `json:"id"`
    Name         string  `json:"name"`
    Email        string  `json:"email"`
    Role         string  `json:"role"`
    ProfileImage *string `json:"profileImage"`
}

func toUserView(u model.User) userView {
    return userView{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role), ProfileImage: u.ProfileImage}
}

type initiativeView struct {
    ID          uint64    `json:"id"`
    Title       string    `json:"title"`
    Description string    `json:"description"`
    Date        time.Time `json:"date"`
    Category    string    `json:"category"`
    ImageURL    *string   `json:"imageUrl"`
    Address     *string   `json:"address"`
    Latitude    *float64  `json:"latitude"`
    Longitude   *float64  `json:"longitude"`
    Approved    bool      `json:"approved"`
    OrganizerID uint64    `json:"organizerId"`
}

func toInitiativeView(i model.Initiative) initiativeView {
    return initiativeView{
        ID: i.ID, Title: i.Title, Description: i.Description, Date: i.Date,
        Category: i.Category, ImageURL: i.ImageURL, Address: i.Address,
        Latitude: i.Latitude, Longitude: i.Longitude, Approved: i.Approved,
        OrganizerID: i.OrganizerID,
    }
}

func toInitiativeViews(items []model.Initiative) []initiativeView {
    out := make([]initiativeView, 0, len(items))
    for _, i := range items {
        out = append(out, toInitiativeView(i))
    }
    return out
}

type volunteerApplicationView struct {
    ID         uint64 `json:"id"`
    Status     string `json:"status"`
    Initiative struct {
        ID       uint64    `json:"id"`
        Title    string    `json:"title"`
        Date     time.Time `json:"date"`
        Category string    `json:"category"`
    } `json:"initiative"`
}

func toVolunteerApplicationView(a repository.VolunteerApplication) volunteerApplicationView {
    var v volunteerApplicationView
    v.ID = a.ID
    v.Status = string(a.Status)
    v.Initiative.ID = a.InitiativeID
    v.Initiative.Title = a.InitiativeTitle
    v.Initiative.Date = a.InitiativeDate
    v.Initiative.Category = a.InitiativeCategory
    return v
}

type organizerApplicationView struct {
    ID        uint64 `json:"id"`
    Status    string `json:"status"`
    Volunteer struct {
        ID    uint64 `json:"id"`
        Name  string `json:"name"`
        Email string `json:"email"`
    } `json:"volunteer"`
    Initiative struct {
        ID    uint64 `json:"id"`
        Title string `json:"title"`
    } `json:"initiative"`
}

func toOrganizerApplicationView(a repository.OrganizerApplication) organizerApplicationView {
    var v organizerApplicationView
    v.ID = a.ID
    v.Status = string(a.Status)
    v.Volunteer.ID = a.VolunteerID
    v.Volunteer.Name = a.VolunteerName
    v.Volunteer.Email = a.VolunteerEmail
    v.Initiative.ID = a.InitiativeID
    v.Initiative.Title = a.InitiativeTitle
    return v
}

func toOrganizerApplicationViews(items []repository.OrganizerApplication) []organizerApplicationView {
    out := make([]organizerApplicationView, 0, len(items))
    for _, a := range items {
        out = append(out, toOrganizerApplicationView(a))
    }
    return out
}

type commentView struct {
    ID        uint64    `json:"id"`
    Content   string    `json:"content"`
    CreatedAt time.Time `json:"createdAt"`
    User      struct {
        ID    uint64 `json:"id"`
        Name  string `json:"name"`
        Email string `json:"email"`
    } `json:"user"`
}

func toCommentView(cw repository.CommentWithAuthor) commentView {
    var v commentView
    v.ID = cw.ID
    v.Content = cw.Content
    v.CreatedAt = cw.CreatedAt
    v.User.ID = cw.UserID
    v.User.Name = cw.AuthorName
    v.User.Email = cw.AuthorEmail
    return v
}
