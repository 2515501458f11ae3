package os

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// LookupEncoding 按名称查找字符编码
// 空字符串和 utf-8 返回 nil (不转码)；先查 WHATWG 名称 (gbk, big5, windows-1252)，
// 再查 IANA 名称 (cp437, ibm850)
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	}

	if enc, err := htmlindex.Get(name); err == nil {
		return enc, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("encoding %q is not supported", name)
	}
	return enc, nil
}

// decodeOutput 把 ping 输出转成 UTF-8，转码失败时原样返回
func decodeOutput(enc encoding.Encoding, out []byte) string {
	if enc == nil || len(out) == 0 {
		return string(out)
	}
	decoded, err := enc.NewDecoder().Bytes(out)
	if err != nil {
		return string(out)
	}
	return string(decoded)
}
