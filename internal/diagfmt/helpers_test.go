package diagfmt

import (
	"path/filepath"

	"lintnames/internal/diag"
	"lintnames/internal/source"
)

const userSource = "interface IUser { id: string }\nconst u: IUser = { id: \"1\" }\n"

// userBag строит мешок с одним нарушением IUser и предлагаемым переименованием.
func userBag(path string) (*diag.Bag, *source.FileSet) {
	fs := source.NewFileSet()
	if filepath.IsAbs(path) {
		fs.SetBaseDir("/home/user/project")
	}
	fileID := fs.AddVirtual(path, []byte(userSource))

	decl := source.Span{File: fileID, Start: 10, End: 15}
	ref := source.Span{File: fileID, Start: 40, End: 45}

	d := diag.New(diag.SevWarning, diag.NameInterfacePrefix, decl, "interface IUser: no I prefix on type names")
	d = d.WithNote(ref, "referenced here")
	d = d.WithFixSuggestion(&diag.Fix{
		ID:            "interface-prefix:IUser",
		Title:         "rename IUser to User",
		Applicability: diag.FixApplicabilitySafeWithHeuristics,
		IsPreferred:   true,
		Edits: []diag.TextEdit{
			{Span: decl, NewText: "User", OldText: "IUser"},
			{Span: ref, NewText: "User", OldText: "IUser"},
		},
	})

	bag := diag.NewBag(10)
	bag.Add(d)
	return bag, fs
}
