package domain

import "errors"

// 拡張リクエストを中断させるエラー分類です。
// いずれも内部でリトライされることはなく、部分的なキャンバスは返しません。
// 呼び出し側は errors.Is で分類を判別できます。
var (
	// ErrInvalidSeed はシード画像の寸法が読み取れない場合のエラーです。
	ErrInvalidSeed = errors.New("シード画像の寸法を読み取れません")

	// ErrGeometry は3分割のいずれかの幅が正にならない場合のエラーです。
	ErrGeometry = errors.New("画像が小さすぎて3分割できません")

	// ErrRegion は抽出領域が画像の範囲外にはみ出した場合のエラーです。
	ErrRegion = errors.New("抽出領域が画像の範囲外です")

	// ErrDimension は中間画像の寸法情報が欠落している場合のエラーです。
	ErrDimension = errors.New("画像の寸法情報が不正です")

	// ErrSynthesis は生成サービスが利用可能な画像を返さなかった場合のエラーです。
	ErrSynthesis = errors.New("画像生成に失敗しました")

	// ErrConfiguration は生成サービスの認証情報が不足している場合のエラーです。
	ErrConfiguration = errors.New("認証情報が設定されていません")
)
