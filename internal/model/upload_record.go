package model

import "time"

// UploadRecord 历史投稿记录，由外部归档维护，只读
type UploadRecord struct {
	AVNum      int64     `json:"AVNum"`
	Topic      string    `json:"Topic"`
	UploadTime time.Time `json:"UploadTime"`
	View       float64   `json:"View"`
	Like       float64   `json:"Like"`
	Coin       float64   `json:"Coin"`
	Save       float64   `json:"Save"`
	Comment    float64   `json:"Comment"`
	DMNum      float64   `json:"DMNum"`
	Duration   float64   `json:"Duration"`
}

// Score 单个稿件的互动得分
func (r UploadRecord) Score() float64 {
	return r.Like + 3*r.Coin + 5*r.Save
}
