package importer

import "context"

// sampleRows は開発用のサンプルデータ。列の並びはシートと同じ
var sampleRows = [][]string{
	{"cs-network", "TCPとUDPの違いは？", "TCPは接続型で信頼性があり、UDPは非接続型で軽量", "", "2.5"},
	{"cs-network", "HTTPのデフォルトポートは？", "80", "HTTPSは443", "2.7"},
	{"cs-network", "DNSの役割は？", "ドメイン名とIPアドレスの対応付け", "", "2.4"},
	{"cs-db", "トランザクションのACIDとは？", "原子性・一貫性・独立性・永続性", "", "1.9"},
	{"cs-db", "楽観ロックとは？", "更新時にバージョンを比較して競合を検出する方式", "", "2.2"},
	{"cs-db", "インデックスの欠点は？", "書き込みが遅くなり容量を使う", "", "2.5"},
	{"lang-en", "ubiquitous", "至る所にある", "形容詞", "2.3"},
	{"lang-en", "meticulous", "細心の", "", "2.0"},
}

// Seed はサンプルのカテゴリとカタログアイテムを登録する。parentCode が空ならルートに作る
func (im *Importer) Seed(ctx context.Context, parentCode string) (*Result, error) {
	return im.ImportRows(ctx, "seed", sampleRows, Options{ParentCode: parentCode})
}
