package usecase

import "github.com/xavierca1/ligue-crm/internal/entity"

// RecipientSelection guarda os contatos marcados no envio em massa.
// Não é thread-safe: pertence a uma única tela/requisição.
type RecipientSelection struct {
	order []string
	set   map[string]struct{}
}

func NewRecipientSelection(ids ...string) *RecipientSelection {
	s := &RecipientSelection{set: make(map[string]struct{})}
	for _, id := range ids {
		s.add(id)
	}
	return s
}

func (s *RecipientSelection) add(id string) {
	if _, ok := s.set[id]; ok {
		return
	}
	s.set[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *RecipientSelection) remove(id string) {
	if _, ok := s.set[id]; !ok {
		return
	}
	delete(s.set, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *RecipientSelection) Has(id string) bool {
	_, ok := s.set[id]
	return ok
}

func (s *RecipientSelection) Len() int {
	return len(s.order)
}

func (s *RecipientSelection) Toggle(id string) {
	if s.Has(id) {
		s.remove(id)
		return
	}
	s.add(id)
}

// ToggleAll seleciona todo o subconjunto filtrado; se ele já está todo
// selecionado, limpa a seleção.
func (s *RecipientSelection) ToggleAll(filtered []entity.Contact) {
	allSelected := len(filtered) > 0
	for _, c := range filtered {
		if !s.Has(c.ID) {
			allSelected = false
			break
		}
	}
	if allSelected {
		s.order = nil
		s.set = make(map[string]struct{})
		return
	}
	for _, c := range filtered {
		s.add(c.ID)
	}
}

// Reconcile deve ser chamado sempre que o filtro ativo muda: seleção ∩ filtrados.
func (s *RecipientSelection) Reconcile(filtered []entity.Contact) {
	visible := make(map[string]struct{}, len(filtered))
	for _, c := range filtered {
		visible[c.ID] = struct{}{}
	}
	kept := s.order[:0]
	for _, id := range s.order {
		if _, ok := visible[id]; ok {
			kept = append(kept, id)
			continue
		}
		delete(s.set, id)
	}
	s.order = kept
}

func (s *RecipientSelection) IDs() []string {
	return append([]string(nil), s.order...)
}
