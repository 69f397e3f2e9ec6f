package update

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gbabineau/statelist/internal/domain"
	"github.com/gbabineau/statelist/internal/infra/cache"
)

// fakeSource 以内存中的条目集充当 taxonomy 来源，并记录是否走了网络。
type fakeSource struct {
	taxa     []domain.Taxon
	fetchErr error
	fetched  bool
}

func (*fakeSource) Name() string { return "fake" }

func (s *fakeSource) Fetch(_ context.Context, _ *http.Client) ([]byte, string, error) {
	s.fetched = true
	if s.fetchErr != nil {
		return nil, "", s.fetchErr
	}
	b, err := json.Marshal(s.taxa)
	return b, "fake://taxonomy", err
}

func (s *fakeSource) Parse(raw []byte) ([]domain.Taxon, error) {
	var taxa []domain.Taxon
	if err := json.Unmarshal(raw, &taxa); err != nil {
		return nil, err
	}
	if len(taxa) == 0 {
		return nil, errors.New("taxonomy 无可用条目")
	}
	return taxa, nil
}

func sampleTaxa() []domain.Taxon {
	return []domain.Taxon{
		{CommonName: "Brant", SciName: "Branta bernicla", SpeciesCode: "brant",
			Order: "Anseriformes", Family: "Anatidae", TaxonOrder: 262, Category: domain.CategorySpecies},
		{CommonName: "Yellow-rumped Warbler", SciName: "Setophaga coronata", SpeciesCode: "yerwar",
			Order: "Passeriformes", Family: "Parulidae", TaxonOrder: 30531, Category: domain.CategorySpecies},
	}
}

func writeInput(t *testing.T, dir, csv string) string {
	t.Helper()
	p := filepath.Join(dir, "virginia.csv")
	if err := os.WriteFile(p, []byte(csv), 0o644); err != nil {
		t.Fatalf("写入输入失败：%v", err)
	}
	return p
}

func TestExecute_完整批次(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir,
		"comName,State Status,Sort as\n"+
			"Yellow-rumped Warbler,Regular,\n"+
			"Brant,Regular,\n"+
			"Unknown Bird,Accidental,\n")

	src := &fakeSource{taxa: sampleTaxa()}
	rr, err := Execute(context.Background(), Options{
		InputPath: in,
		CacheDir:  filepath.Join(dir, ".cache"),
		Source:    src,
	})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}

	if rr.Output != filepath.Join(dir, "virginia_updated.csv") {
		t.Fatalf("输出路径错误：%q", rr.Output)
	}
	if _, err := os.Stat(rr.Output); err != nil {
		t.Fatalf("输出文件未写入：%v", err)
	}
	if rr.Summary.Rows != 3 || rr.Summary.Resolved != 2 || rr.Summary.NotFound != 1 {
		t.Fatalf("summary 错误：%+v", rr.Summary)
	}
	if len(rr.Issues) != 1 || rr.Issues[0].Kind != domain.IssueUnresolvedName {
		t.Fatalf("期望 1 条 unresolved_name，实际 %+v", rr.Issues)
	}
	if rr.FinishedAt.Before(rr.StartedAt) {
		t.Fatalf("时间戳错误：%v %v", rr.StartedAt, rr.FinishedAt)
	}

	// 首次运行后快照应落盘。
	if _, hit, _ := cache.New(filepath.Join(dir, ".cache")).ReadTaxonomy(); !hit {
		t.Fatalf("期望快照已写入缓存")
	}
}

func TestExecute_缓存命中不走网络(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "comName,State Status,Sort as\nBrant,Regular,\n")

	cacheDir := filepath.Join(dir, ".cache")
	raw, _ := json.Marshal(sampleTaxa())
	if err := cache.New(cacheDir).WriteTaxonomy(raw); err != nil {
		t.Fatalf("预置缓存失败：%v", err)
	}

	src := &fakeSource{fetchErr: errors.New("不应发起网络请求")}
	rr, err := Execute(context.Background(), Options{InputPath: in, CacheDir: cacheDir, Source: src})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if src.fetched {
		t.Fatalf("缓存命中时不应 Fetch")
	}
	if rr.Summary.Resolved != 1 {
		t.Fatalf("summary 错误：%+v", rr.Summary)
	}
}

func TestExecute_坏缓存触发重新拉取(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "comName,State Status,Sort as\nBrant,Regular,\n")

	cacheDir := filepath.Join(dir, ".cache")
	if err := cache.New(cacheDir).WriteTaxonomy([]byte("{corrupt")); err != nil {
		t.Fatalf("预置缓存失败：%v", err)
	}

	src := &fakeSource{taxa: sampleTaxa()}
	if _, err := Execute(context.Background(), Options{InputPath: in, CacheDir: cacheDir, Source: src}); err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if !src.fetched {
		t.Fatalf("坏缓存应触发重新拉取")
	}

	// 坏快照被有效快照覆盖。
	raw, hit, err := cache.New(cacheDir).ReadTaxonomy()
	if err != nil || !hit {
		t.Fatalf("读取快照失败：hit=%v err=%v", hit, err)
	}
	if _, err := src.Parse(raw); err != nil {
		t.Fatalf("回写的快照应可解析：%v", err)
	}
}

func TestExecute_拉取失败(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "comName,State Status,Sort as\nBrant,Regular,\n")

	src := &fakeSource{fetchErr: errors.New("连接被拒绝")}
	_, err := Execute(context.Background(), Options{
		InputPath: in,
		CacheDir:  filepath.Join(dir, ".cache"),
		Source:    src,
	})
	if FatalCode(err) != domain.ErrCodeFetchFailed {
		t.Fatalf("期望 %s，实际 %v", domain.ErrCodeFetchFailed, err)
	}
}

func TestExecute_输入文件缺失(t *testing.T) {
	dir := t.TempDir()
	_, err := Execute(context.Background(), Options{
		InputPath: filepath.Join(dir, "missing.csv"),
		CacheDir:  filepath.Join(dir, ".cache"),
		Source:    &fakeSource{taxa: sampleTaxa()},
	})
	if FatalCode(err) != domain.ErrCodeIOFailed {
		t.Fatalf("期望 %s，实际 %v", domain.ErrCodeIOFailed, err)
	}
}
