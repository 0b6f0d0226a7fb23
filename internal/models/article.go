package models

import "time"

// ArticleTag marks where an article surfaces on the Hoofbeat front page.
type ArticleTag string

const (
	TagHeadline ArticleTag = "HEADLINE"
	TagTrending ArticleTag = "TRENDING"
	TagNews     ArticleTag = "NEWS"
)

// Article is one Hoofbeat story.
type Article struct {
	ID        string     `db:"id" json:"id"`
	Slug      string     `db:"slug" json:"slug"`
	Title     string     `db:"title" json:"title"`
	Author    string     `db:"author" json:"author"`
	Date      time.Time  `db:"date" json:"date"`
	Image     *string    `db:"image" json:"image,omitempty"`
	Content   string     `db:"content" json:"content"`
	Tag       *ArticleTag `db:"tag" json:"tag,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// HoofbeatFrontPage mirrors the news feed home payload.
type HoofbeatFrontPage struct {
	Headline *Article  `json:"headline"`
	Trending []Article `json:"trending"`
	News     []Article `json:"news"`
}
