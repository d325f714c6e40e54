package domain

// Direction はキャンバスを拡張する方向です。
type Direction string

const (
	DirectionRight Direction = "right"
	DirectionLeft  Direction = "left"
	DirectionDown  Direction = "down"
)

// Stage は下方向拡張における合成ステップの種別です。
// 水平方向のドライバーでは空になります。
type Stage string

const (
	StageNone       Stage = ""
	StageVertical   Stage = "vertical"
	StageHorizontal Stage = "horizontal"
)

// StepRecord はエンジンの進行を表す追記専用の記録です。
// 挿入順が意味を持つため、生成後に変更してはいけません。
type StepRecord struct {
	Iteration int       `json:"iteration"`
	Direction Direction `json:"direction"`
	Stage     Stage     `json:"stage,omitempty"`
}

// RowCoverage は下方向拡張の水平ループがどう終了したかを示します。
// ゼロ増分による早期終了（Stalled）と全幅到達（Covered）を
// 呼び出し側が区別できるようにするためのフラグです。
type RowCoverage struct {
	Covered bool `json:"covered"`
	Stalled bool `json:"stalled"`
}
