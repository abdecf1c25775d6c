package consts

const ContentTypeJSON = "application/json"

const (
	// ObjectRosterKey 名册在存储桶中的对象名
	ObjectRosterKey = "roster/a.json"
	// ObjectForecastPrefix 预测文件在存储桶中的前缀
	ObjectForecastPrefix = "forecast/"
)

// ProgressEvery 计算名册时每处理多少个 UP 主打印一次进度
const ProgressEvery = 150
