// Package export 将蓝图与续写结果渲染为可下载文档
package export

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"scriptoria-api/internal/domain/entity"
	apperrors "scriptoria-api/pkg/errors"
	"scriptoria-api/pkg/metrics"
)

// Format 导出格式
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
)

const (
	MsgUnsupportedFormat = "unsupported export format"
	MsgNothingToExport   = "nothing to export"
)

const (
	defaultBlueprintTitle    = "Film Blueprint"
	defaultContinuationTitle = "Story Continuation"
)

var formatAliases = map[string]Format{
	"":         FormatMarkdown,
	"md":       FormatMarkdown,
	"markdown": FormatMarkdown,
	"txt":      FormatText,
	"text":     FormatText,
	"json":     FormatJSON,
}

// ParseFormat 解析查询参数中的格式，空值默认为 markdown
func ParseFormat(s string) (Format, error) {
	if f, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return "", apperrors.ErrInvalidParam(MsgUnsupportedFormat)
}

func (f Format) extension() string {
	switch f {
	case FormatText:
		return "txt"
	case FormatJSON:
		return "json"
	default:
		return "md"
	}
}

func (f Format) contentType() string {
	switch f {
	case FormatText:
		return "text/plain; charset=utf-8"
	case FormatJSON:
		return "application/json; charset=utf-8"
	default:
		return "text/markdown; charset=utf-8"
	}
}

// Document 渲染结果
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Blueprint 按展示顺序导出非空分节
func Blueprint(bp entity.FilmBlueprint, title string, f Format) (*Document, error) {
	if bp.IsEmpty() {
		return nil, apperrors.ErrInvalidParam(MsgNothingToExport)
	}
	title = titleOr(title, defaultBlueprintTitle)

	var (
		body []byte
		err  error
	)
	switch f {
	case FormatMarkdown:
		body = []byte(blueprintMarkdown(bp, title))
	case FormatText:
		body = []byte(blueprintText(bp, title))
	case FormatJSON:
		body, err = json.MarshalIndent(bp, "", "  ")
	default:
		return nil, apperrors.ErrInvalidParam(MsgUnsupportedFormat)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeExportFailed, "failed to render export")
	}

	metrics.ExportTotal.WithLabelValues("blueprint", string(f)).Inc()
	return newDocument(title, f, body), nil
}

// Continuation 导出续写文本
func Continuation(text string, title string, f Format) (*Document, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.ErrInvalidParam(MsgNothingToExport)
	}
	title = titleOr(title, defaultContinuationTitle)

	var (
		body []byte
		err  error
	)
	switch f {
	case FormatMarkdown:
		body = []byte(fmt.Sprintf("# %s\n\n%s\n", title, strings.TrimSpace(text)))
	case FormatText:
		body = []byte(underline(strings.ToUpper(title), "=") + "\n" + strings.TrimSpace(text) + "\n")
	case FormatJSON:
		body, err = json.MarshalIndent(map[string]string{
			"title":        title,
			"continuation": text,
		}, "", "  ")
	default:
		return nil, apperrors.ErrInvalidParam(MsgUnsupportedFormat)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeExportFailed, "failed to render export")
	}

	metrics.ExportTotal.WithLabelValues("continuation", string(f)).Inc()
	return newDocument(title, f, body), nil
}

func blueprintMarkdown(bp entity.FilmBlueprint, title string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", title)
	for _, k := range entity.SectionKeys {
		v := strings.TrimSpace(bp.Get(k))
		if v == "" {
			continue
		}
		fmt.Fprintf(&sb, "\n## %s\n\n%s\n", k.Title(), v)
	}
	return sb.String()
}

func blueprintText(bp entity.FilmBlueprint, title string) string {
	var sb strings.Builder
	sb.WriteString(underline(strings.ToUpper(title), "="))
	for _, k := range entity.SectionKeys {
		v := strings.TrimSpace(bp.Get(k))
		if v == "" {
			continue
		}
		sb.WriteString("\n")
		sb.WriteString(underline(strings.ToUpper(k.Title()), "-"))
		sb.WriteString(v)
		sb.WriteString("\n")
	}
	return sb.String()
}

func underline(s, mark string) string {
	return s + "\n" + strings.Repeat(mark, len([]rune(s))) + "\n"
}

func titleOr(title, def string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	return def
}

func newDocument(title string, f Format, body []byte) *Document {
	return &Document{
		Filename:    Slug(title) + "." + f.extension(),
		ContentType: f.contentType(),
		Body:        body,
	}
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug 生成文件名，非 ASCII 字母数字折叠为连字符
func Slug(title string) string {
	s := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if s == "" {
		return "scriptoria-export"
	}
	if len(s) > 64 {
		s = strings.TrimRight(s[:64], "-")
	}
	return s
}
