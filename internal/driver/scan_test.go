package driver

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"

	"lintnames/internal/decl"
	"lintnames/internal/errs"
	"lintnames/internal/testkit"
)

var sampleTree = map[string]string{
	"models/user.ts":            "export interface IUser { id: string }\nexport type TUserId = string\n",
	"api/dto.ts":                "import { IUser } from '../models/user'\nexport type UserDto = { user: IUser }\n",
	"app.ts":                    "import { IUser } from './models/user'\nconst u: IUser = { id: '1' }\nclass Service {}\n",
	"broken.ts":                 "const s = 'unterminated\nlet x: IUser\n",
	"node_modules/x/index.d.ts": "export interface IVendor {}\n",
}

func scanSample(t *testing.T, opts Options) (*ScanResult, string) {
	t.Helper()
	root := t.TempDir()
	testkit.WriteTree(t, root, sampleTree)
	res, err := Scan(context.Background(), root, opts)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	return res, root
}

func TestScanCollectsFactsAndParseErrors(t *testing.T) {
	res, _ := scanSample(t, Options{Jobs: 3})

	if len(res.Files) != 4 {
		t.Fatalf("files = %d, want 4 (vendored file must be skipped)", len(res.Files))
	}
	parseErrs := res.ParseErrors()
	if len(parseErrs) != 1 {
		t.Fatalf("parse errors = %v", parseErrs)
	}
	var pe *errs.ParseError
	if !errors.As(parseErrs[0], &pe) || filepath.Base(pe.Path) != "broken.ts" || pe.Line != 1 {
		t.Fatalf("unexpected parse error %v", parseErrs[0])
	}
	if !res.Bag.HasParseFailure() {
		t.Error("bag should carry the lexical error")
	}
	for i := range res.Files {
		fr := &res.Files[i]
		if fr.Err != nil {
			if len(fr.Facts.Declarations) != 0 {
				t.Errorf("%s: unparsable file contributed declarations", fr.Path)
			}
			continue
		}
		if err := testkit.CheckFactInvariants(res.FileSet.Get(fr.FileID), fr.Facts); err != nil {
			t.Errorf("%s: %v", fr.Path, err)
		}
	}
}

func TestScanResultIsDeterministicAcrossJobs(t *testing.T) {
	one, _ := scanSample(t, Options{Jobs: 1})
	many, _ := scanSample(t, Options{Jobs: 8})
	if len(one.Files) != len(many.Files) {
		t.Fatal("file count differs")
	}
	for i := range one.Files {
		a, b := one.Files[i], many.Files[i]
		if filepath.Base(a.Path) != filepath.Base(b.Path) || len(a.Facts.Idents) != len(b.Facts.Idents) {
			t.Errorf("slot %d differs: %s/%d vs %s/%d", i, a.Path, len(a.Facts.Idents), b.Path, len(b.Facts.Idents))
		}
	}
}

func TestScanObserverSeesEveryFile(t *testing.T) {
	var (
		mu   sync.Mutex
		seen = map[string]FileEvent{}
	)
	res, _ := scanSample(t, Options{OnFile: func(ev FileEvent) {
		mu.Lock()
		seen[filepath.Base(ev.Path)] = ev
		mu.Unlock()
	}})
	if len(seen) != len(res.Files) {
		t.Fatalf("observer saw %d files, want %d", len(seen), len(res.Files))
	}
	if !seen["broken.ts"].Failed {
		t.Error("broken.ts should be reported as failed")
	}
	for _, ev := range seen {
		if ev.Total != len(res.Files) || ev.Done < 1 || ev.Done > ev.Total {
			t.Errorf("bad progress event %+v", ev)
		}
	}
}

func TestScanUsesCache(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	root := t.TempDir()
	testkit.WriteTree(t, root, sampleTree)

	first, err := Scan(context.Background(), root, Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached() != 0 {
		t.Fatalf("cold scan had %d hits", first.Cached())
	}
	second, err := Scan(context.Background(), root, Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if second.Cached() != len(second.Files) {
		t.Fatalf("warm scan hits = %d, want %d", second.Cached(), len(second.Files))
	}
	if len(second.ParseErrors()) != 1 {
		t.Error("cached problems must still produce a ParseError")
	}
}

func TestScanCancelled(t *testing.T) {
	root := t.TempDir()
	testkit.WriteTree(t, root, sampleTree)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Scan(ctx, root, Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestBuildIndex(t *testing.T) {
	res, _ := scanSample(t, Options{})
	idx := BuildIndex(res)

	names := map[string]*decl.Declaration{}
	for _, d := range idx.Declarations {
		names[d.Name] = d
	}
	for _, want := range []string{"IUser", "TUserId", "UserDto"} {
		if names[want] == nil {
			t.Fatalf("declaration %s missing; got %v", want, names)
		}
	}

	user := names["IUser"]
	if user.Kind != decl.KindInterface || !user.Exported {
		t.Errorf("IUser = %+v", user)
	}
	if user.Site.Start.Line != 1 || user.Site.Start.Col != 18 {
		t.Errorf("IUser position = %+v", user.Site.Start)
	}
	// api/dto.ts: import + field type; app.ts: import + annotation. broken.ts is excluded.
	if len(user.References) != 4 {
		t.Errorf("IUser references = %d, want 4", len(user.References))
	}
	if len(idx.Sites("IUser")) != 5 {
		t.Errorf("IUser sites = %d, want 5", len(idx.Sites("IUser")))
	}

	if len(idx.TypeDeclared("Service")) != 1 {
		t.Error("class Service should be declared at type level")
	}
	appID := idx.Sites("Service")[0].File
	if !idx.Bound(appID, "u") || idx.Bound(appID, "nothing") {
		t.Error("per-file bindings are wrong")
	}
	if m := idx.Mentions("IUser"); len(m) != 1 || filepath.Base(m[0].Path) != "broken.ts" {
		t.Errorf("Mentions(IUser) = %v", m)
	}
	if m := idx.Mentions("IUse"); len(m) != 0 {
		t.Error("Mentions must match whole words only")
	}
}

func TestDeclarationsIsLazyAndRestartable(t *testing.T) {
	root := t.TempDir()
	testkit.WriteTree(t, root, sampleTree)
	seq := Declarations(context.Background(), root, Options{})

	count := func() (decls, failures int) {
		for d, err := range seq {
			if err != nil {
				failures++
				continue
			}
			if d.Name == "" {
				t.Fatal("empty declaration name")
			}
			decls++
		}
		return decls, failures
	}
	d1, f1 := count()
	d2, f2 := count()
	if d1 != 3 || f1 != 1 {
		t.Fatalf("first range: %d decls, %d failures", d1, f1)
	}
	if d1 != d2 || f1 != f2 {
		t.Fatalf("second range differs: %d/%d vs %d/%d", d1, f1, d2, f2)
	}

	// early stop
	n := 0
	for range seq {
		n++
		break
	}
	if n != 1 {
		t.Fatal("break did not stop the sequence")
	}
}
