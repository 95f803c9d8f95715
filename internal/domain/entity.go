package domain

import "github.com/shopspring/decimal"

// Entity 是保存在后端、以 id 标识的记录
type Entity interface {
	EntityID() int64
}

func init() {
	// 后端把薪资当作 JSON 数字解析
	decimal.MarshalJSONWithoutQuotes = true
}
