package server

import (
	"time"

	"quill/internal/models"
)

// Response DTOs keep the wire format independent of the GORM models: authors
// serialize as usernames, images as public /media URLs, and field sets are
// enumerated explicitly so schema additions never leak by accident.

type userResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio,omitempty"`
}

type groupResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type postResponse struct {
	ID      uint      `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
	Image   *string   `json:"image"`
	Group   *uint     `json:"group"`
}

type commentResponse struct {
	ID      uint      `json:"id"`
	Author  string    `json:"author"`
	Post    uint      `json:"post"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

type followResponse struct {
	ID        uint   `json:"id"`
	User      string `json:"user"`
	Following string `json:"following"`
}

// paginatedResponse is the envelope for limit/offset listings.
type paginatedResponse struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Bio:      u.Bio,
	}
}

func toGroupResponse(g *models.Group) groupResponse {
	return groupResponse{
		ID:          g.ID,
		Title:       g.Title,
		Slug:        g.Slug,
		Description: g.Description,
	}
}

func toGroupResponses(groups []*models.Group) []groupResponse {
	out := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, toGroupResponse(g))
	}
	return out
}

func toPostResponse(p *models.Post) postResponse {
	resp := postResponse{
		ID:      p.ID,
		Author:  p.Author.Username,
		Text:    p.Text,
		PubDate: p.PubDate,
		Group:   p.GroupID,
	}
	if p.Image != "" {
		url := "/media/" + p.Image
		resp.Image = &url
	}
	return resp
}

func toPostResponses(posts []*models.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out
}

func toCommentResponse(cm *models.Comment) commentResponse {
	return commentResponse{
		ID:      cm.ID,
		Author:  cm.Author.Username,
		Post:    cm.PostID,
		Text:    cm.Text,
		Created: cm.Created,
	}
}

func toCommentResponses(comments []*models.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for _, cm := range comments {
		out = append(out, toCommentResponse(cm))
	}
	return out
}

func toFollowResponse(f *models.Follow) followResponse {
	return followResponse{
		ID:        f.ID,
		User:      f.User.Username,
		Following: f.Following.Username,
	}
}

func toFollowResponses(follows []*models.Follow) []followResponse {
	out := make([]followResponse, 0, len(follows))
	for _, f := range follows {
		out = append(out, toFollowResponse(f))
	}
	return out
}
