package card

import "strings"

type CardList []Card

// Count 获取总牌数
func (ds CardList) Count() int {
	return len(ds)
}

func (ds CardList) Contains(c Card) bool {
	for _, cc := range ds {
		if cc == c {
			return true
		}
	}
	return false
}

func (ds CardList) Bytes() []byte {
	return Cards2bytes(ds)
}

func (ds CardList) String() string {
	parts := make([]string, 0, len(ds))
	for _, c := range ds {
		parts = append(parts, c.String())
	}
	return "[" + strings.Join(parts, " ") + "]"
}
