package store

import "sync"

// 进程共享的全局内存存储
// 收敛为显式的单例存储，与其余后端共用同一契约：
// 进程启动后初始化一次，运行期间不销毁
var (
	globalStore *MemoryStore
	globalOnce  sync.Once
)

// Shared 返回进程级共享的内存存储单例
// 同一进程内的所有组件（webhook 处理、取回端点）看到同一份会话表
func Shared() *MemoryStore {
	globalOnce.Do(func() {
		globalStore = NewMemoryStore()
	})
	return globalStore
}
