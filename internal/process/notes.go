package process

import (
	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/diag"
	"github.com/go-bms/bmscore/internal/lex"
	"github.com/go-bms/bmscore/internal/model"
	"github.com/go-bms/bmscore/internal/objid"
	"github.com/go-bms/bmscore/internal/prompt"
)

// NotesProcessor handles every note-lane message channel plus the BGM
// channel that shares the note-grid layout (spec.md §4.3 item 7). It
// owns no headers: #LNMODE/#LNTYPE belong to RepresentationProcessor
// since they describe bookkeeping rather than note placement.
type NotesProcessor struct {
	Layout KeyLayoutMapper

	// lnOpen tracks, per lane, whether the next non-"00" cell on a
	// long-note channel opens or closes the region (spec.md §3 invariant
	// 3: starts and ends alternate within a lane).
	lnOpen map[model.Lane]bool
}

func (n *NotesProcessor) OnHeader(*model.Model, prompt.Prompter, string, string) ([]diag.Warning, []diag.Error) {
	return nil, nil
}

func (n *NotesProcessor) OnMessage(m *model.Model, p prompt.Prompter, tok lex.Token) ([]diag.Warning, []diag.Error) {
	if tok.Channel.Kind == lex.ChannelBGM {
		return n.insertBgm(m, tok)
	}
	if tok.Channel.Kind != lex.ChannelNote {
		return nil, nil
	}
	if n.lnOpen == nil {
		n.lnOpen = make(map[model.Lane]bool)
	}

	side := model.PlayerSide(tok.Channel.Note.Side)
	lane, ok := n.Layout.MapLane(side, tok.Channel.Note.Key)
	if !ok {
		return []diag.Warning{diag.New(diag.UnknownChannel, 0, 0, diag.Range{},
			"channel %q has no lane in the active game style", tok.Channel.Code)}, nil
	}

	if tok.Track == 0 {
		m.NoteTrackZero()
	}

	cells, warnings := splitCells(tok.Message)
	var errs []diag.Error
	for i, cell := range cells {
		if cell == "00" {
			continue
		}
		id, err := objid.Parse(cell, m.Representation.CaseSensitive)
		if err != nil {
			warnings = append(warnings, diag.New(diag.MalformedMessagePayload, 0, 0, diag.Range{}, "invalid note cell %q", cell))
			continue
		}
		t := cellObjTime(tok.Track, i, len(cells))
		w, e := n.insertOne(m, p, t, lane, id, tok.Channel.Note.NoteKind)
		warnings = append(warnings, w...)
		errs = append(errs, e...)
	}
	return warnings, errs
}

func (n *NotesProcessor) insertOne(m *model.Model, p prompt.Prompter, t bmstime.ObjTime, lane model.Lane, id objid.ObjId, nk lex.NoteKind) ([]diag.Warning, []diag.Error) {
	switch nk {
	case lex.NoteVisible:
		return m.Notes.Insert(p, t, lane, model.NoteEvent{ID: id, Kind: model.NoteVisible})
	case lex.NoteInvisible:
		return m.Notes.Insert(p, t, lane, model.NoteEvent{ID: id, Kind: model.NoteInvisible})
	case lex.NoteMine:
		return m.Notes.Insert(p, t, lane, model.NoteEvent{ID: id, Kind: model.NoteMine})
	case lex.NoteLong:
		opening := !n.lnOpen[lane]
		n.lnOpen[lane] = opening
		if opening {
			return m.Notes.Insert(p, t, lane, model.NoteEvent{ID: id, Kind: model.NoteLNStart})
		}
		return m.Notes.Insert(p, t, lane, model.NoteEvent{ID: id, Kind: model.NoteLNEnd})
	}
	return nil, nil
}

func (*NotesProcessor) insertBgm(m *model.Model, tok lex.Token) ([]diag.Warning, []diag.Error) {
	cells, warnings := splitCells(tok.Message)
	for i, cell := range cells {
		if cell == "00" {
			continue
		}
		id, err := objid.Parse(cell, m.Representation.CaseSensitive)
		if err != nil {
			warnings = append(warnings, diag.New(diag.MalformedMessagePayload, 0, 0, diag.Range{}, "invalid BGM cell %q", cell))
			continue
		}
		t := cellObjTime(tok.Track, i, len(cells))
		m.Notes.PushBgm(t, id)
	}
	return warnings, nil
}
