package xdirective

import (
	"fmt"
	"strings"
)

// NoLimit 表示 SplitCSV 不限制切分次数。
const NoLimit = 0

// SplitCSV 按 CSV 规则拆分 s，遵守双引号转义。
//
// max > 0 时最多执行 max 次切分，剩余输入原样作为最后一个字段；
// 例如 SplitCSV(`a,b,c`, 1) 返回 ["a", "b,c"]。
// 末尾的空字段不会产生记号（"a," 返回 ["a"]）。
func SplitCSV(s string, max int) ([]string, error) {
	var (
		result  []string
		token   strings.Builder
		inQuote bool
		count   int
		i       int
	)

	for i < len(s) && (max <= 0 || count < max) {
		switch c := s[i]; c {
		case '"':
			if !inQuote {
				inQuote = true
				break
			}
			if i+1 == len(s) {
				// 引号恰好闭合于输入末尾
				inQuote = false
				result = append(result, token.String())
				token.Reset()
				count++
				break
			}
			switch s[i+1] {
			case '"':
				token.WriteByte('"')
				i++
			case ',':
				inQuote = false
			default:
				return nil, fmt.Errorf("%w: %s", ErrMalformedCSV, s)
			}
		case ',':
			if inQuote {
				token.WriteByte(c)
				break
			}
			result = append(result, token.String())
			token.Reset()
			count++
		default:
			token.WriteByte(c)
		}
		i++
	}

	if inQuote {
		return nil, fmt.Errorf("%w: unterminated quote: %s", ErrMalformedCSV, s)
	}
	if token.Len() > 0 {
		result = append(result, token.String())
	}
	if i < len(s) {
		result = append(result, s[i:])
	}
	return result, nil
}

// ParseAttributes 解析 CSV 形式的 k=v 列表（不含方括号）。
//
// 每个记号必须恰好包含一个 '='，否则返回 [ErrMalformedAttribute]。
// 重复的键以最后一次出现为准。
func ParseAttributes(inner string) (Attributes, error) {
	tokens, err := SplitCSV(inner, NoLimit)
	if err != nil {
		return nil, err
	}

	attrs := make(Attributes, len(tokens))
	for _, tok := range tokens {
		kv := strings.Split(tok, "=")
		if len(kv) != 2 {
			return nil, fmt.Errorf("%w: %s", ErrMalformedAttribute, tok)
		}
		attrs[kv[0]] = kv[1]
	}
	return attrs, nil
}
