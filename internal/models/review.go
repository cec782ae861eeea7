package models

import "time"

type Review struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Name      string    `json:"name,omitempty"`
	BookID    int64     `json:"bookId"`
	BookTitle string    `json:"bookTitle,omitempty"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type BookReviews struct {
	BookID    int64    `json:"bookId"`
	BookTitle string   `json:"bookTitle"`
	Reviews   []Review `json:"reviews"`
}

type ReviewRequest struct {
	BookID  int64  `json:"bookId"`
	Comment string `json:"comment,omitempty"`
}

type AdminDeleteReviewRequest struct {
	UserID   string `json:"userId"`
	ReviewID int64  `json:"reviewId"`
	Message  string `json:"message,omitempty"`
}
