package model

import "sort"

// カートの1行分（book_id と希望数量）。
type CartLine struct {
	BookID   int64 `json:"book_id"`
	Quantity int64 `json:"quantity"`
}

// Cart はセッションの寿命だけ生きる値オブジェクト。book_id → 数量。
// DBには保存しない。数量はあくまで「希望」で、在庫の正は確定時の減算にある。
type Cart struct {
	Items map[int64]int64 `json:"items"`
}

// 空のカートを作る
func NewCart() Cart {
	return Cart{Items: map[int64]int64{}}
}

// Add は同じ本なら数量を加算する。qtyが0以下なら何もしない。
func (c *Cart) Add(bookID int64, qty int64) {
	if qty <= 0 {
		return
	}
	if c.Items == nil {
		c.Items = map[int64]int64{}
	}
	c.Items[bookID] += qty
}

// Update は数量を上書きする。0以下なら行ごと消す。
func (c *Cart) Update(bookID int64, qty int64) {
	if c.Items == nil {
		c.Items = map[int64]int64{}
	}
	if qty <= 0 {
		delete(c.Items, bookID)
		return
	}
	c.Items[bookID] = qty
}

// Remove は行を消す。無くてもエラーにしない。
func (c *Cart) Remove(bookID int64) {
	delete(c.Items, bookID)
}

// Clear は全行を消す。注文確定が成功したときだけ呼ぶ。
func (c *Cart) Clear() {
	c.Items = map[int64]int64{}
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Copy は独立したマップを持つ複製を返す（ストアとの共有を防ぐ）。
func (c Cart) Copy() Cart {
	dup := NewCart()
	for id, qty := range c.Items {
		dup.Items[id] = qty
	}
	return dup
}

// Lines はbook_id昇順の行スライスを返す。
// 確定処理が行ロックを取る順番を固定するためにも昇順であること。
func (c Cart) Lines() []CartLine {
	lines := make([]CartLine, 0, len(c.Items))
	for id, qty := range c.Items {
		lines = append(lines, CartLine{BookID: id, Quantity: qty})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].BookID < lines[j].BookID })
	return lines
}
