package snapshot

import (
	"fmt"

	"beacon/internal/diag"
	"beacon/internal/memhost"
	"beacon/internal/source"
	"beacon/internal/syntax"
	"beacon/internal/typesys"
)

// Materialize rebuilds an in-memory host from a decoded payload. Indices in
// the payload are 1-based; nodes and types must precede anything that
// references them.
func Materialize(p *Payload) (*memhost.Host, error) {
	h := memhost.New()

	fileIDs := make([]source.FileID, len(p.Files))
	nodeIDs := make([][]syntax.NodeID, len(p.Files))
	for i, fr := range p.Files {
		file, err := materializeFile(h, fr)
		if err != nil {
			return nil, fmt.Errorf("file %q: %w", fr.Path, err)
		}
		fileIDs[i] = file
		nodeIDs[i] = recordNodeIDs(fr)
	}

	typeIDs := make([]typesys.TypeID, len(p.Types))
	for i, tr := range p.Types {
		ty, err := materializeType(tr, typeIDs[:i])
		if err != nil {
			return nil, fmt.Errorf("type %d: %w", i+1, err)
		}
		typeIDs[i] = h.TypeInterner().Intern(ty)
	}

	resolveFile := func(idx uint32) (source.FileID, []syntax.NodeID, error) {
		if idx == 0 || int(idx) > len(fileIDs) {
			return source.NoFileID, nil, fmt.Errorf("file index %d out of range", idx)
		}
		return fileIDs[idx-1], nodeIDs[idx-1], nil
	}
	resolveNode := func(nodes []syntax.NodeID, idx uint32) (syntax.NodeID, error) {
		if idx == 0 || int(idx) > len(nodes) {
			return syntax.NoNodeID, fmt.Errorf("node index %d out of range", idx)
		}
		return nodes[idx-1], nil
	}
	resolveType := func(idx uint32) (typesys.TypeID, error) {
		if idx == 0 || int(idx) > len(typeIDs) {
			return typesys.NoTypeID, fmt.Errorf("type index %d out of range", idx)
		}
		return typeIDs[idx-1], nil
	}

	for _, a := range p.ExprTypes {
		file, nodes, err := resolveFile(a.File)
		if err != nil {
			return nil, err
		}
		node, err := resolveNode(nodes, a.Node)
		if err != nil {
			return nil, err
		}
		ty, err := resolveType(a.Type)
		if err != nil {
			return nil, err
		}
		h.SetExprType(file, node, ty)
	}
	for _, a := range p.DeclTypes {
		file, nodes, err := resolveFile(a.File)
		if err != nil {
			return nil, err
		}
		node, err := resolveNode(nodes, a.Node)
		if err != nil {
			return nil, err
		}
		ty, err := resolveType(a.Type)
		if err != nil {
			return nil, err
		}
		h.SetDeclaredType(file, node, ty)
	}
	for _, l := range p.Links {
		useFile, useNodes, err := resolveFile(l.UseFile)
		if err != nil {
			return nil, err
		}
		use, err := resolveNode(useNodes, l.Use)
		if err != nil {
			return nil, err
		}
		declFile, declNodes, err := resolveFile(l.DeclFile)
		if err != nil {
			return nil, err
		}
		decl, err := resolveNode(declNodes, l.Decl)
		if err != nil {
			return nil, err
		}
		h.LinkCross(useFile, use, declFile, decl)
	}
	for _, dr := range p.Diagnostics {
		file, _, err := resolveFile(dr.Primary.File)
		if err != nil {
			return nil, err
		}
		h.AddDiagnostic(file, materializeDiagnostic(dr, fileIDs))
	}
	return h, nil
}

func materializeFile(h *memhost.Host, fr FileRecord) (source.FileID, error) {
	file, tree := h.AddFile(fr.Path, fr.Content)
	ids := make([]syntax.NodeID, len(fr.Nodes))
	for i, nr := range fr.Nodes {
		children := make([]syntax.NodeID, len(nr.Children))
		for j, c := range nr.Children {
			if c == 0 || int(c) > i {
				return source.NoFileID, fmt.Errorf("node %d: child index %d not yet defined", i+1, c)
			}
			children[j] = ids[c-1]
		}
		span := source.Span{File: file, Start: nr.Start, End: nr.End}
		id := tree.New(syntax.NodeKind(nr.Kind), span, children...)
		if nr.Text != "" {
			tree.SetText(id, nr.Text)
		}
		if nr.Flags != 0 {
			tree.SetFlags(id, syntax.NodeFlags(nr.Flags))
		}
		ids[i] = id
	}
	if fr.Root != 0 {
		if int(fr.Root) > len(ids) {
			return source.NoFileID, fmt.Errorf("root index %d out of range", fr.Root)
		}
		tree.SetRoot(ids[fr.Root-1])
	}
	return file, nil
}

// recordNodeIDs recovers the replayed IDs; allocation order matches record
// order so this is a straight enumeration.
func recordNodeIDs(fr FileRecord) []syntax.NodeID {
	ids := make([]syntax.NodeID, len(fr.Nodes))
	for i := range fr.Nodes {
		ids[i] = syntax.NodeID(i + 1) // #nosec G115 -- bounded by record count
	}
	return ids
}

func materializeType(tr TypeRecord, earlier []typesys.TypeID) (typesys.Type, error) {
	kind := typesys.Kind(tr.Kind)
	if kind > typesys.KindOther {
		return typesys.Type{}, fmt.Errorf("unknown type kind %d", tr.Kind)
	}
	ty := typesys.Type{
		Kind:    kind,
		BoolVal: tr.BoolVal,
		StrVal:  tr.StrVal,
		NumVal:  tr.NumVal,
	}
	for _, e := range tr.Elems {
		if e == 0 || int(e) > len(earlier) {
			return typesys.Type{}, fmt.Errorf("union element index %d not yet defined", e)
		}
		ty.Elems = append(ty.Elems, earlier[e-1])
	}
	if tr.Target != 0 {
		if int(tr.Target) > len(earlier) {
			return typesys.Type{}, fmt.Errorf("alias target index %d not yet defined", tr.Target)
		}
		ty.Target = earlier[tr.Target-1]
	}
	return ty, nil
}

func materializeDiagnostic(dr DiagnosticRecord, fileIDs []source.FileID) diag.Diagnostic {
	d := diag.Diagnostic{
		Severity: diag.Severity(dr.Severity),
		Code:     diag.Code(dr.Code),
		Message:  dr.Message,
		Primary:  materializeSpan(dr.Primary, fileIDs),
	}
	for _, n := range dr.Notes {
		d.Notes = append(d.Notes, diag.Note{
			Span: materializeSpan(n.Span, fileIDs),
			Msg:  n.Message,
		})
	}
	return d
}

func materializeSpan(sr SpanRecord, fileIDs []source.FileID) source.Span {
	sp := source.Span{Start: sr.Start, End: sr.End}
	if sr.File >= 1 && int(sr.File) <= len(fileIDs) {
		sp.File = fileIDs[sr.File-1]
	}
	return sp
}
