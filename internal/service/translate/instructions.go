package translate

import "sync"

// Instructions 自定义翻译风格指令表
// 操作者通过 HTTP 维护，提示词构建方在每次语体化调用时读取并追加。
// 进程级单份、并发安全；刻意不做持久化，重启丢失可接受
type Instructions struct {
	mu    sync.RWMutex
	items []string
}

// NewInstructions 创建空指令表
func NewInstructions() *Instructions {
	return &Instructions{}
}

// Add 追加一条指令，空白指令由调用方在入口处拦截
func (i *Instructions) Add(instruction string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.items = append(i.items, instruction)
}

// List 返回当前所有指令的副本
func (i *Instructions) List() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	result := make([]string, len(i.items))
	copy(result, i.items)
	return result
}

// Remove 按 0 起始序号删除指令，越界时忽略
func (i *Instructions) Remove(index int) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if index < 0 || index >= len(i.items) {
		return
	}
	i.items = append(i.items[:index], i.items[index+1:]...)
}

// Clear 清空全部指令
func (i *Instructions) Clear() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.items = nil
}
