package prompt

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed templates/*.txt
var templatesFS embed.FS

type PromptID string

const (
	PromptBlueprintV1    PromptID = "blueprint_v1"
	PromptContinuationV1 PromptID = "continuation_v1"
)

// knownPrompts 每个提示词对应 templates/<id>.system.txt 与 templates/<id>.user.txt
var knownPrompts = map[PromptID]struct{}{
	PromptBlueprintV1:    {},
	PromptContinuationV1: {},
}

// Registry 按 id 加载 system/user 模板并缓存解析结果
type Registry struct {
	fsys fs.FS

	mu    sync.RWMutex
	cache map[PromptID]einoprompt.ChatTemplate
}

// NewRegistry 使用随二进制嵌入的模板
func NewRegistry() *Registry {
	return NewRegistryFS(templatesFS)
}

// NewRegistryFS 从给定文件系统读取 templates/ 目录
func NewRegistryFS(fsys fs.FS) *Registry {
	return &Registry{
		fsys:  fsys,
		cache: make(map[PromptID]einoprompt.ChatTemplate),
	}
}

// IDs 返回已登记的提示词，按字典序
func IDs() []PromptID {
	ids := make([]PromptID, 0, len(knownPrompts))
	for id := range knownPrompts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (r *Registry) ChatTemplate(id PromptID) (einoprompt.ChatTemplate, error) {
	if r == nil {
		return nil, fmt.Errorf("prompt registry is nil")
	}

	r.mu.RLock()
	if tpl, ok := r.cache[id]; ok {
		r.mu.RUnlock()
		return tpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.cache[id]; ok {
		return tpl, nil
	}

	if _, ok := knownPrompts[id]; !ok {
		return nil, fmt.Errorf("unknown prompt id: %s", id)
	}
	system, err := r.read(id, "system")
	if err != nil {
		return nil, err
	}
	user, err := r.read(id, "user")
	if err != nil {
		return nil, err
	}

	tpl := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(system),
		schema.UserMessage(user),
	)
	r.cache[id] = tpl
	return tpl, nil
}

// Preload 解析全部登记的提示词，启动时发现缺失的模板文件
func (r *Registry) Preload() error {
	for _, id := range IDs() {
		if _, err := r.ChatTemplate(id); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) read(id PromptID, role string) (string, error) {
	path := fmt.Sprintf("templates/%s.%s.txt", id, role)
	b, err := fs.ReadFile(r.fsys, path)
	if err != nil {
		return "", fmt.Errorf("read prompt %s %s template: %w", id, role, err)
	}
	text := strings.TrimSpace(string(b))
	if text == "" {
		return "", fmt.Errorf("prompt %s %s template is empty", id, role)
	}
	return text, nil
}
