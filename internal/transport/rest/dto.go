package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/himalink/internal/domain"
	"github.com/heartmarshall/himalink/internal/service/calendar"
	"github.com/heartmarshall/himalink/internal/service/chatsync"
	"github.com/heartmarshall/himalink/internal/service/entrysync"
)

// ---------------------------------------------------------------------------
// Requests
// ---------------------------------------------------------------------------

type createEntryRequest struct {
	Title     string     `json:"title"`
	Content   *string    `json:"content"`
	EntryType string     `json:"entryType"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	IsAllDay  bool       `json:"isAllDay"`
	Location  *string    `json:"location"`
}

func (r createEntryRequest) input() calendar.CreateEntryInput {
	return calendar.CreateEntryInput{
		Title:     r.Title,
		Content:   r.Content,
		EntryType: domain.EntryType(r.EntryType),
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		IsAllDay:  r.IsAllDay,
		Location:  r.Location,
	}
}

type updateEntryRequest struct {
	Title         *string    `json:"title"`
	Content       *string    `json:"content"`
	EntryType     *string    `json:"entryType"`
	StartTime     *time.Time `json:"startTime"`
	EndTime       *time.Time `json:"endTime"`
	IsAllDay      *bool      `json:"isAllDay"`
	Location      *string    `json:"location"`
	ClearContent  bool       `json:"clearContent"`
	ClearEndTime  bool       `json:"clearEndTime"`
	ClearLocation bool       `json:"clearLocation"`
}

func (r updateEntryRequest) input() calendar.UpdateEntryInput {
	in := calendar.UpdateEntryInput{
		Title:         r.Title,
		Content:       r.Content,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		IsAllDay:      r.IsAllDay,
		Location:      r.Location,
		ClearContent:  r.ClearContent,
		ClearEndTime:  r.ClearEndTime,
		ClearLocation: r.ClearLocation,
	}
	if r.EntryType != nil {
		t := domain.EntryType(*r.EntryType)
		in.EntryType = &t
	}
	return in
}

type reactionRequest struct {
	Kind string `json:"kind"`
}

type textRequest struct {
	Text string `json:"text"`
}

// ---------------------------------------------------------------------------
// Responses
// ---------------------------------------------------------------------------

type entryResponse struct {
	ID             uuid.UUID       `json:"id"`
	OwnerID        uuid.UUID       `json:"ownerId"`
	OwnerUsername  *string         `json:"ownerUsername,omitempty"`
	OwnerAvatarURL *string         `json:"ownerAvatarUrl,omitempty"`
	Title          string          `json:"title"`
	Content        *string         `json:"content,omitempty"`
	EntryType      string          `json:"entryType"`
	StartTime      time.Time       `json:"startTime"`
	EndTime        *time.Time      `json:"endTime,omitempty"`
	IsAllDay       bool            `json:"isAllDay"`
	Location       *string         `json:"location,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	Social         *socialResponse `json:"social,omitempty"`
}

func toEntryResponse(e *domain.Entry) entryResponse {
	return entryResponse{
		ID:             e.ID,
		OwnerID:        e.OwnerID,
		OwnerUsername:  e.OwnerUsername,
		OwnerAvatarURL: e.OwnerAvatarURL,
		Title:          e.Title,
		Content:        e.Content,
		EntryType:      e.EntryType.String(),
		StartTime:      e.StartTime,
		EndTime:        e.EndTime,
		IsAllDay:       e.IsAllDay,
		Location:       e.Location,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

type reactionCountResponse struct {
	Kind  string          `json:"kind"`
	Count int             `json:"count"`
	Users []reactorResult `json:"users"`
}

type reactorResult struct {
	UserID    uuid.UUID `json:"userId"`
	Username  string    `json:"username"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
}

type commentResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Username  *string   `json:"username,omitempty"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type imageResponse struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	Caption   *string   `json:"caption,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type socialResponse struct {
	EntryID     uuid.UUID               `json:"entryId"`
	Reactions   []reactionCountResponse `json:"reactions"`
	MyReactions []string                `json:"myReactions"`
	Comments    []commentResponse       `json:"comments"`
	Images      []imageResponse         `json:"images"`
}

// toSocialResponse lists reactions in display order and skips kinds
// nobody used.
func toSocialResponse(p entrysync.Projection) *socialResponse {
	resp := &socialResponse{
		EntryID:     p.EntryID,
		Reactions:   []reactionCountResponse{},
		MyReactions: make([]string, 0, len(p.MyReactions)),
		Comments:    make([]commentResponse, 0, len(p.Comments)),
		Images:      make([]imageResponse, 0, len(p.Images)),
	}
	for _, k := range domain.ReactionKinds() {
		n := p.Summary[k]
		if n == 0 {
			continue
		}
		rc := reactionCountResponse{Kind: k.String(), Count: n, Users: []reactorResult{}}
		for _, u := range p.Detail[k] {
			rc.Users = append(rc.Users, reactorResult{UserID: u.UserID, Username: u.Username, AvatarURL: u.AvatarURL})
		}
		resp.Reactions = append(resp.Reactions, rc)
	}
	for _, k := range p.MyReactions {
		resp.MyReactions = append(resp.MyReactions, k.String())
	}
	for _, c := range p.Comments {
		resp.Comments = append(resp.Comments, commentResponse{
			ID:        c.ID,
			UserID:    c.UserID,
			Username:  c.Username,
			AvatarURL: c.AvatarURL,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		})
	}
	for _, img := range p.Images {
		resp.Images = append(resp.Images, imageResponse{
			ID:        img.ID,
			URL:       img.ImageURL,
			Caption:   img.Caption,
			CreatedAt: img.CreatedAt,
		})
	}
	return resp
}

type peerResponse struct {
	UserID    uuid.UUID `json:"userId"`
	Username  string    `json:"username"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
}

type messageResponse struct {
	ID          uuid.UUID `json:"id"`
	SenderID    uuid.UUID `json:"senderId"`
	RecipientID uuid.UUID `json:"recipientId"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"createdAt"`
}

type conversationResponse struct {
	Peer    peerResponse `json:"peer"`
	Preview string       `json:"preview"`
	Loaded  bool         `json:"loaded"`
}

type conversationDetailResponse struct {
	conversationResponse
	Messages []messageResponse `json:"messages"`
}

func toConversationResponse(c chatsync.Conversation) conversationResponse {
	return conversationResponse{
		Peer:    peerResponse{UserID: c.Peer.UserID, Username: c.Peer.Username, AvatarURL: c.Peer.AvatarURL},
		Preview: c.Preview,
		Loaded:  c.Loaded,
	}
}

func toConversationDetail(c chatsync.Conversation) conversationDetailResponse {
	resp := conversationDetailResponse{
		conversationResponse: toConversationResponse(c),
		Messages:             make([]messageResponse, 0, len(c.Messages)),
	}
	for _, m := range c.Messages {
		resp.Messages = append(resp.Messages, messageResponse{
			ID:          m.ID,
			SenderID:    m.SenderID,
			RecipientID: m.RecipientID,
			Text:        m.Text,
			CreatedAt:   m.CreatedAt,
		})
	}
	return resp
}

type visitedResponse struct {
	UserIDs []uuid.UUID `json:"userIds"`
}
