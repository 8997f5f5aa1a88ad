package xfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"绝对路径", "/var/log/app.log", "/var/log/app.log", nil},
		{"冗余分隔符", "/var//log/./app.log", "/var/log/app.log", nil},
		{"绝对路径中的点点被解析", "/var/log/../tmp/app.log", "/var/tmp/app.log", nil},
		{"相对路径", "logs/app.log", filepath.Join("logs", "app.log"), nil},
		{"点点开头的合法文件名", "logs/..config", filepath.Join("logs", "..config"), nil},
		{"空路径", "", "", ErrEmptyPath},
		{"空字节", "app\x00.log", "", ErrNullByte},
		{"目录路径", "/var/log/", "", ErrInvalidPath},
		{"反斜杠结尾", `logs\`, "", ErrInvalidPath},
		{"相对路径指向上级目录", "../logs/app.log", filepath.Join("..", "logs", "app.log"), nil},
		{"多级上级目录", "a/../../../logs/app.log", filepath.Join("..", "..", "logs", "app.log"), nil},
		{"根目录", "/", "", ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizePath(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitExt(t *testing.T) {
	tests := []struct {
		input    string
		wantStem string
		wantExt  string
	}{
		{"mylog.txt", "mylog", ".txt"},
		{"mylog", "mylog", ""},
		{"mylog.", "mylog.", ""},
		{"/dir1/dir2/mylog.txt", "/dir1/dir2/mylog", ".txt"},
		{".mylog", ".mylog", ""},
		{"/dir1/dir2/.mylog", "/dir1/dir2/.mylog", ""},
		{"my_folder/.mylog.txt", "my_folder/.mylog", ".txt"},
		{"my.folder/mylog", "my.folder/mylog", ""},
		{"my.folder/mylog.txt", "my.folder/mylog", ".txt"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stem, ext := SplitExt(tt.input)
			assert.Equal(t, tt.wantStem, stem)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}
