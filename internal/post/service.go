// Package post はファイルシステム上のmarkdown記事の読み込みとRSS配信を提供する。
package post

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"

	"github.com/hitoshi/mdblog/internal/model"
)

// SanitizerService は記事HTMLのサニタイズに必要なインターフェース。
// security.SanitizerServiceの部分集合として定義する。
type SanitizerService interface {
	SanitizeHTML(rawHTML string) string
}

// ServiceConfig は記事サービスの設定。
type ServiceConfig struct {
	// PostsDir はmarkdown記事を格納するディレクトリ。
	PostsDir string
}

// Service はmarkdown記事の読み込みとレンダリングを提供する。
// 記事はリクエストのたびにディレクトリから読み直す。
// 再起動なしで記事の追加・更新を反映するための設計判断。
type Service struct {
	config    ServiceConfig
	sanitizer SanitizerService
	markdown  goldmark.Markdown
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(config ServiceConfig, sanitizer SanitizerService) *Service {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)
	return &Service{
		config:    config,
		sanitizer: sanitizer,
		markdown:  md,
	}
}

// frontmatter はmarkdown先頭のYAMLメタデータ。
type frontmatter struct {
	Title   string `yaml:"title"`
	Author  string `yaml:"author"`
	Date    string `yaml:"date"`
	Excerpt string `yaml:"excerpt"`
}

// 日付はdate-onlyとRFC3339の両形式を受け付ける
var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", raw)
}

// splitFrontmatter は「---」で囲まれた先頭のYAMLブロックと本文を分離する。
// frontmatterがない場合はYAML部分が空文字列になる。
func splitFrontmatter(raw []byte) (yamlPart, body string) {
	content := strings.ReplaceAll(string(raw), "\r\n", "\n")
	if !strings.HasPrefix(content, "---\n") {
		return "", content
	}
	rest := content[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return "", content
	}
	body = rest[end+len("\n---"):]
	body = strings.TrimPrefix(body, "\n")
	return rest[:end], body
}

// List は全記事をメタデータのみ（Content空）で日付降順に返す。
func (s *Service) List(ctx context.Context) ([]model.Post, error) {
	entries, err := os.ReadDir(s.config.PostsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Post{}, nil
		}
		slog.Error("failed to read posts directory", slog.String("error", err.Error()), slog.String("dir", s.config.PostsDir))
		return nil, model.NewStoreUnavailableError()
	}

	posts := make([]model.Post, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		slug := strings.TrimSuffix(entry.Name(), ".md")
		post, err := s.load(slug)
		if err != nil {
			// 壊れた記事はスキップして残りを返す
			slog.Warn("skipping unreadable post", slog.String("slug", slug), slog.String("error", err.Error()))
			continue
		}
		post.Content = ""
		posts = append(posts, *post)
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})

	return posts, nil
}

// GetBySlug は指定スラッグの記事をレンダリング済みHTML付きで返す。
// 記事が存在しない場合はPOST_NOT_FOUNDを返す。
func (s *Service) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	// パス探索によるディレクトリ外参照を拒否する
	if slug == "" || slug != filepath.Base(slug) || strings.HasPrefix(slug, ".") {
		return nil, model.NewPostNotFoundError(slug)
	}

	post, err := s.load(slug)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.NewPostNotFoundError(slug)
		}
		slog.Error("failed to load post", slog.String("slug", slug), slog.String("error", err.Error()))
		return nil, model.NewStoreUnavailableError()
	}

	return post, nil
}

func (s *Service) load(slug string) (*model.Post, error) {
	raw, err := os.ReadFile(filepath.Join(s.config.PostsDir, slug+".md"))
	if err != nil {
		return nil, err
	}

	yamlPart, body := splitFrontmatter(raw)

	var fm frontmatter
	if yamlPart != "" {
		if err := yaml.Unmarshal([]byte(yamlPart), &fm); err != nil {
			return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
		}
	}
	if fm.Title == "" {
		fm.Title = slug
	}

	var date time.Time
	if fm.Date != "" {
		date, err = parseDate(fm.Date)
		if err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(body), &buf); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}

	return &model.Post{
		Slug:    slug,
		Title:   fm.Title,
		Author:  fm.Author,
		Date:    date,
		Excerpt: fm.Excerpt,
		Content: s.sanitizer.SanitizeHTML(buf.String()),
	}, nil
}
