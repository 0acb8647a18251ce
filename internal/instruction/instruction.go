package instruction

import "sol-ix-decoder/internal/types"

// Instruction 表示一条主指令或 inner 指令，构造完成后不可变。
// Accounts 的位置即语义：第 N 个槽位对应该 variant 的第 N 个形式角色。
type Instruction struct {
	Program  types.Pubkey   // 指令对应的程序 ID
	Accounts []types.Pubkey // 指令涉及的账户列表，保持原始顺序
	Data     []byte         // 指令原始数据，解码前视为不透明字节
	Inner    []*Instruction // 由链上程序逻辑产生的嵌套指令，保持执行顺序

	// StackHeight 是 CPI 调用深度：主指令为 1，inner 从 2 起。
	StackHeight uint32
}

// VisitAll 前序展平：自身，随后递归每条 inner 指令。
// 保证 [R, C1, G, C2] 这样的顺序（C1 的子指令先于 C2 输出）。
func (ix *Instruction) VisitAll() []*Instruction {
	out := make([]*Instruction, 0, 1+len(ix.Inner))
	ix.appendTo(&out)
	return out
}

func (ix *Instruction) appendTo(out *[]*Instruction) {
	*out = append(*out, ix)
	for _, inner := range ix.Inner {
		inner.appendTo(out)
	}
}

// FlattenAll 对一组根指令做整体前序展平。
func FlattenAll(roots []*Instruction) []*Instruction {
	out := make([]*Instruction, 0, len(roots)*2)
	for _, root := range roots {
		root.appendTo(&out)
	}
	return out
}
