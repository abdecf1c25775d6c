package consts

const (
	FaceCacheKey = "upstat:face:"
)

const (
	PipelineLock = "upstat:pipeline:lock"
)
