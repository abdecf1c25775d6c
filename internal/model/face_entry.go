package model

// FaceEntry 头像导出的精简投影
type FaceEntry struct {
	UID  int64  `json:"uid"`
	Face string `json:"Face"`
}
