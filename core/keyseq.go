package core

// keyAction runs a completed multi-key command.
type keyAction func(editor Editor, buffer Buffer) error

// keyTrie maps key sequences (dd, yy, gg, ...) to actions. A node with
// children is a prefix worth waiting on.
type keyTrie struct {
	root *keyNode
}

type keyNode struct {
	children map[rune]*keyNode
	action   keyAction
}

func newKeyTrie() *keyTrie {
	return &keyTrie{root: &keyNode{children: make(map[rune]*keyNode)}}
}

// Insert binds seq to action.
func (t *keyTrie) Insert(seq string, action keyAction) {
	node := t.root
	for _, r := range seq {
		child, ok := node.children[r]
		if !ok {
			child = &keyNode{children: make(map[rune]*keyNode)}
			node.children[r] = child
		}
		node = child
	}
	node.action = action
}

func (t *keyTrie) find(seq []rune) *keyNode {
	node := t.root
	for _, r := range seq {
		child, ok := node.children[r]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

type feedResult int

const (
	seqNone      feedResult = iota // nothing pending and key starts no sequence
	seqPending                     // key stored, waiting for more
	seqMatched                     // sequence complete, action returned
	seqCancelled                   // pending sequence broken, key consumed
)

// pendingKeys accumulates keys against a trie.
type pendingKeys struct {
	trie *keyTrie
	keys []rune
}

func newPendingKeys(trie *keyTrie) *pendingKeys {
	return &pendingKeys{trie: trie}
}

// Feed advances the pending sequence with key.
func (p *pendingKeys) Feed(key KeyEvent) (keyAction, feedResult) {
	wasPending := len(p.keys) > 0
	if key.Rune == 0 || key.Modifiers&(ModCtrl|ModAlt) != 0 {
		p.Reset()
		if wasPending {
			return nil, seqCancelled
		}
		return nil, seqNone
	}

	seq := append(p.keys, key.Rune)
	node := p.trie.find(seq)
	if node == nil && wasPending {
		// A broken sequence restarts from the breaking key when it opens one.
		p.Reset()
		seq = append(p.keys, key.Rune)
		if node = p.trie.find(seq); node == nil {
			return nil, seqCancelled
		}
	}
	switch {
	case node == nil:
		p.Reset()
		return nil, seqNone
	case len(node.children) > 0:
		p.keys = seq
		return nil, seqPending
	case node.action != nil:
		p.Reset()
		return node.action, seqMatched
	default:
		p.Reset()
		return nil, seqCancelled
	}
}

func (p *pendingKeys) Reset() {
	p.keys = p.keys[:0]
}

func (p *pendingKeys) String() string {
	return string(p.keys)
}
