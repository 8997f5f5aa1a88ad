package xdirective

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/docker/go-units"
)

// Attributes 属性表：属性名 → 原始字符串值。
type Attributes map[string]string

// 布尔属性可接受的记号（大小写不敏感）。
var (
	trueTokens  = []string{"1", "true", "t", "yes", "y"}
	falseTokens = []string{"0", "false", "f", "no", "n"}
)

// Lookup 返回原始值及其是否存在。
func (a Attributes) Lookup(name string) (string, bool) {
	v, ok := a[name]
	return v, ok
}

// String 读取必填字符串属性。
func (a Attributes) String(name string) (string, error) {
	v, ok := a[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingAttribute, name)
	}
	return v, nil
}

// StringOr 读取字符串属性，缺失时返回 def。
func (a Attributes) StringOr(name, def string) string {
	if v, ok := a[name]; ok {
		return v
	}
	return def
}

// Bool 读取必填布尔属性。
func (a Attributes) Bool(name string) (bool, error) {
	v, err := a.String(name)
	if err != nil {
		return false, err
	}
	return parseBool(name, v)
}

// BoolOr 读取布尔属性，缺失时返回 def。
func (a Attributes) BoolOr(name string, def bool) (bool, error) {
	v, ok := a[name]
	if !ok {
		return def, nil
	}
	return parseBool(name, v)
}

// Int 读取必填整数属性。
func (a Attributes) Int(name string) (int, error) {
	v, err := a.String(name)
	if err != nil {
		return 0, err
	}
	return parseInt(name, v)
}

// IntOr 读取整数属性，缺失时返回 def。
func (a Attributes) IntOr(name string, def int) (int, error) {
	v, ok := a[name]
	if !ok {
		return def, nil
	}
	return parseInt(name, v)
}

// Size 读取必填的非负字节数属性。
//
// 除纯数字外还接受带单位的写法（"64KB"、"10MiB"、"1g"），单位按 1024 进制换算。
func (a Attributes) Size(name string) (int64, error) {
	v, err := a.String(name)
	if err != nil {
		return 0, err
	}
	return parseSize(name, v)
}

// SizeOr 读取字节数属性，缺失时返回 def。
func (a Attributes) SizeOr(name string, def int64) (int64, error) {
	v, ok := a[name]
	if !ok {
		return def, nil
	}
	return parseSize(name, v)
}

// Duration 读取必填的时间间隔属性（time.ParseDuration 格式）。
func (a Attributes) Duration(name string) (time.Duration, error) {
	v, err := a.String(name)
	if err != nil {
		return 0, err
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a valid duration", ErrInvalidAttribute, name, v)
	}
	return d, nil
}

// Clone 返回属性表的浅拷贝。
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

func parseBool(name, v string) (bool, error) {
	for _, tok := range trueTokens {
		if strings.EqualFold(v, tok) {
			return true, nil
		}
	}
	for _, tok := range falseTokens {
		if strings.EqualFold(v, tok) {
			return false, nil
		}
	}
	return false, fmt.Errorf("%w: %s=%q is not a valid boolean", ErrInvalidAttribute, name, v)
}

func parseInt(name, v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a valid integer", ErrInvalidAttribute, name, v)
	}
	return n, nil
}

func parseSize(name, v string) (int64, error) {
	s := strings.TrimSpace(v)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("%w: %s=%q must not be negative", ErrInvalidAttribute, name, v)
		}
		return n, nil
	}
	n, err := units.RAMInBytes(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s=%q is not a valid size", ErrInvalidAttribute, name, v)
	}
	return n, nil
}
