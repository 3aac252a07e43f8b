package app

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/botenders/govsimplify/internal/agency"
	"github.com/botenders/govsimplify/internal/api"
	"github.com/botenders/govsimplify/internal/config"
	"github.com/botenders/govsimplify/internal/keys"
	"github.com/botenders/govsimplify/internal/session"
	"github.com/botenders/govsimplify/internal/ui"
)

func TestNew_StartsInAgencySelection(t *testing.T) {
	m, _ := testModel(t)

	if m.Mode() != ViewAgencySelection {
		t.Errorf("Mode() = %v, want %v", m.Mode(), ViewAgencySelection)
	}
	if m.Session() != nil {
		t.Error("no session should exist before an agency is chosen")
	}
	if m.CanSendMessage() {
		t.Error("CanSendMessage() should be false without a conversation")
	}
}

func TestView_LoadingBeforeSize(t *testing.T) {
	cat, err := agency.Default()
	if err != nil {
		t.Fatal(err)
	}
	m := New(testConfig(t), cat, "test")
	if got := m.RenderToString(); got != "Loading..." {
		t.Errorf("RenderToString() = %q, want Loading...", got)
	}
}

func TestView_CatalogShowsAgencies(t *testing.T) {
	m, _ := testModel(t)
	view := m.RenderToString()
	for _, want := range []string{ui.AppTitle, "FDA", "EPA"} {
		if !strings.Contains(view, want) {
			t.Errorf("catalog view missing %q", want)
		}
	}
}

func TestSelectThenConfirm_StartsConversation(t *testing.T) {
	m, backend := testModel(t)

	m = typeText(m, "FDA")
	m, _ = sendKeyCmd(m, keys.Enter) // select
	m, msgs := sendKeyCmd(m, keys.Enter)

	confirmed, ok := findMsg[ui.AgencyConfirmedMsg](msgs)
	if !ok {
		t.Fatalf("second Enter should confirm, got %v", msgs)
	}
	if confirmed.Record.ID != "FDA" {
		t.Fatalf("confirmed %q, want FDA", confirmed.Record.ID)
	}

	result, cmd := m.Update(confirmed)
	m = result.(*Model)
	newsMsgs := drain(cmd)

	if m.Mode() != ViewConversation {
		t.Fatalf("Mode() = %v, want conversation", m.Mode())
	}
	rec, ok := m.ActiveAgency()
	if !ok || rec.ID != "FDA" {
		t.Errorf("ActiveAgency() = %v, %v; want FDA", rec.ID, ok)
	}
	if got := m.Session().AgencyID(); got != "FDA" {
		t.Errorf("session agency = %q, want FDA", got)
	}
	if got := m.NewsPanel().Agency(); got != "FDA" {
		t.Errorf("news agency = %q, want FDA", got)
	}
	if _, ok := findMsg[NewsMsg](newsMsgs); !ok {
		t.Fatal("mount should issue a news fetch")
	}
	queries := backend.NewsQueries()
	if len(queries) != 1 || queries[0] != "Food and Drug Administration" {
		t.Errorf("news queries = %v, want the agency's full name", queries)
	}
	if got := m.config.GetLastAgency(); got != "FDA" {
		t.Errorf("last agency = %q, want FDA", got)
	}
}

func TestSend_EmptyInputIsNoOp(t *testing.T) {
	m, backend, _ := testConversation(t, "FDA")

	m = typeText(m, "   ")
	m, msgs := sendKeyCmd(m, keys.Enter)

	if _, ok := findMsg[ReplyMsg](msgs); ok {
		t.Error("blank input should not be sent")
	}
	if m.Session().Len() != 0 {
		t.Errorf("transcript length = %d, want 0", m.Session().Len())
	}
	if len(backend.Sent()) != 0 {
		t.Errorf("backend received %d messages, want 0", len(backend.Sent()))
	}
	if m.Session().IsAwaiting() {
		t.Error("session should stay idle")
	}
}

func TestSend_SuccessAppendsReply(t *testing.T) {
	m, backend, _ := testConversation(t, "FDA")

	m = typeText(m, "hello")
	m, msgs := sendKeyCmd(m, keys.Enter)

	if m.Session().Len() != 1 || !m.Session().IsAwaiting() {
		t.Fatalf("after send: len=%d awaiting=%v", m.Session().Len(), m.Session().IsAwaiting())
	}
	if m.chat.GetInput() != "" {
		t.Errorf("input = %q, want cleared", m.chat.GetInput())
	}

	reply, ok := findMsg[ReplyMsg](msgs)
	if !ok {
		t.Fatal("send should produce a ReplyMsg")
	}
	m = deliver(m, reply)

	if got := m.Session().Len(); got != 2 {
		t.Fatalf("transcript length = %d, want 2", got)
	}
	last, _ := m.Session().LastReply()
	if last.Text != "Here is what I found." || last.IsError {
		t.Errorf("last reply = %+v", last)
	}
	if m.Session().IsAwaiting() {
		t.Error("session should be idle after the reply")
	}

	sent := backend.Sent()
	if len(sent) != 1 {
		t.Fatalf("backend received %d messages, want 1", len(sent))
	}
	if sent[0].AgencyID != "FDA" || sent[0].Request.Message != "hello" {
		t.Errorf("sent = %+v", sent[0])
	}
	if sent[0].Request.SessionID != m.Session().ID() {
		t.Errorf("sessionId = %q, want %q", sent[0].Request.SessionID, m.Session().ID())
	}
}

func TestSend_FailureAppendsApology(t *testing.T) {
	m, backend, _ := testConversation(t, "FDA")
	backend.sendErr = errors.New("connection refused")

	m = typeText(m, "hello")
	m, msgs := sendKeyCmd(m, keys.Enter)
	reply, ok := findMsg[ReplyMsg](msgs)
	if !ok {
		t.Fatal("send should produce a ReplyMsg")
	}
	m = deliver(m, reply)

	transcript := m.Session().Transcript()
	if len(transcript) != 2 {
		t.Fatalf("transcript length = %d, want 2", len(transcript))
	}
	if !transcript[1].IsError || transcript[1].Text != session.ApologyText {
		t.Errorf("failure message = %+v", transcript[1])
	}
}

func TestSend_IgnoredWhileAwaiting(t *testing.T) {
	m, backend, _ := testConversation(t, "FDA")

	m = typeText(m, "first")
	m, _ = sendKeyCmd(m, keys.Enter)
	m = typeText(m, "second")
	m, msgs := sendKeyCmd(m, keys.Enter)

	if _, ok := findMsg[ReplyMsg](msgs); ok {
		t.Error("second send should be ignored while awaiting")
	}
	if m.Session().Len() != 1 {
		t.Errorf("transcript length = %d, want 1", m.Session().Len())
	}
	if m.chat.GetInput() != "second" {
		t.Errorf("input = %q, want it kept", m.chat.GetInput())
	}
	if len(backend.Sent()) != 1 {
		t.Errorf("backend received %d messages, want 1", len(backend.Sent()))
	}
}

func TestSlowHint_ShowsAndClears(t *testing.T) {
	m, _, _ := testConversation(t, "FDA")

	m = typeText(m, "hello")
	m, msgs := sendKeyCmd(m, keys.Enter)
	reply, ok := findMsg[ReplyMsg](msgs)
	if !ok {
		t.Fatal("send should produce a ReplyMsg")
	}

	if strings.Contains(m.RenderToString(), ui.SlowHint) {
		t.Fatal("slow hint should not show before the threshold")
	}

	m = deliver(m, SlowMsg{Request: reply.Request})
	if !m.Session().IsSlow() {
		t.Fatal("session should be marked slow")
	}
	if !strings.Contains(m.RenderToString(), ui.SlowHint) {
		t.Error("slow hint should show after the threshold")
	}

	m = deliver(m, reply)
	if strings.Contains(m.RenderToString(), ui.SlowHint) {
		t.Error("slow hint should clear once the reply arrives")
	}
}

func TestSlowMsg_StaleRequestIgnored(t *testing.T) {
	m, _, _ := testConversation(t, "FDA")

	m = typeText(m, "hello")
	m, msgs := sendKeyCmd(m, keys.Enter)
	reply, _ := findMsg[ReplyMsg](msgs)
	m = deliver(m, reply, SlowMsg{Request: reply.Request})

	if m.Session().IsSlow() {
		t.Error("a slow signal for a resolved request must be ignored")
	}
}

func TestReply_AfterLeavingIsDropped(t *testing.T) {
	m, _, _ := testConversation(t, "FDA")

	m = typeText(m, "hello")
	m, msgs := sendKeyCmd(m, keys.Enter)
	reply, _ := findMsg[ReplyMsg](msgs)

	m = sendKey(m, keys.CtrlB)
	m = deliver(m, reply)
	if m.Mode() != ViewAgencySelection || m.Session() != nil {
		t.Fatal("late reply must not reopen the conversation")
	}

	rec, _ := m.catalog.Get("FDA")
	m = deliver(m, ui.AgencyConfirmedMsg{Record: rec}, reply)
	if m.Session().Len() != 0 {
		t.Errorf("new session picked up a reply from the old one: len=%d", m.Session().Len())
	}
}

func TestNews_StaleResultDropped(t *testing.T) {
	m, backend := testModel(t)
	backend.news["Environmental Protection Agency"] = []api.Article{{Title: "EPA story", Link: "https://example.com/epa"}}
	backend.news["Securities and Exchange Commission"] = []api.Article{{Title: "SEC story", Link: "https://example.com/sec"}}

	epa, _ := m.catalog.Get("EPA")
	result, cmd := m.Update(ui.AgencyConfirmedMsg{Record: epa})
	m = result.(*Model)
	epaNews, ok := findMsg[NewsMsg](drain(cmd))
	if !ok {
		t.Fatal("EPA mount should fetch news")
	}

	m = sendKey(m, keys.CtrlB)
	sec, _ := m.catalog.Get("SEC")
	result, cmd = m.Update(ui.AgencyConfirmedMsg{Record: sec})
	m = result.(*Model)
	secNews, ok := findMsg[NewsMsg](drain(cmd))
	if !ok {
		t.Fatal("SEC mount should fetch news")
	}

	// EPA's result lands while SEC is still loading
	m = deliver(m, epaNews)
	if !m.NewsPanel().Loading() {
		t.Error("stale EPA result must not finish SEC's load")
	}

	m = deliver(m, secNews, epaNews)
	articles := m.NewsPanel().Articles()
	if len(articles) != 1 || articles[0].Title != "SEC story" {
		t.Errorf("articles = %+v, want only SEC's", articles)
	}
	if m.NewsPanel().Agency() != "SEC" {
		t.Errorf("news agency = %q, want SEC", m.NewsPanel().Agency())
	}
}

func TestNews_RefetchedOnEveryActivation(t *testing.T) {
	m, backend := testModel(t)

	for _, id := range []string{"FDA", "SEC", "FDA"} {
		rec, _ := m.catalog.Get(id)
		result, cmd := m.Update(ui.AgencyConfirmedMsg{Record: rec})
		m = result.(*Model)
		m = deliver(m, drain(cmd)...)
		m = sendKey(m, keys.CtrlB)
	}

	want := []string{
		"Food and Drug Administration",
		"Securities and Exchange Commission",
		"Food and Drug Administration",
	}
	if diff := cmp.Diff(want, backend.NewsQueries()); diff != "" {
		t.Errorf("news queries mismatch (-want +got):\n%s", diff)
	}
}

func TestNews_FetchErrorShowsEmpty(t *testing.T) {
	m, backend := testModel(t)
	backend.newsErr = errors.New("upstream down")

	rec, _ := m.catalog.Get("FDA")
	result, cmd := m.Update(ui.AgencyConfirmedMsg{Record: rec})
	m = result.(*Model)
	m = deliver(m, drain(cmd)...)

	if !m.NewsPanel().Empty() {
		t.Errorf("news status = %v, want empty", m.NewsPanel().Status())
	}
}

func TestCtrlB_ReturnsToCatalog(t *testing.T) {
	m, _, _ := testConversation(t, "FDA")
	s := m.Session()

	m = sendKey(m, keys.CtrlB)

	if m.Mode() != ViewAgencySelection {
		t.Errorf("Mode() = %v, want agency selection", m.Mode())
	}
	if !s.IsClosed() {
		t.Error("leaving the conversation should close the session")
	}
	if m.NewsPanel().Agency() != "" {
		t.Errorf("news agency = %q, want reset", m.NewsPanel().Agency())
	}
}

func TestCtrlB_IgnoredInCatalog(t *testing.T) {
	m, _ := testModel(t)
	m = sendKey(m, keys.CtrlB)
	if m.Mode() != ViewAgencySelection {
		t.Error("ctrl+b in the catalog should do nothing")
	}
}

func TestHeaderClick_ReturnsToCatalog(t *testing.T) {
	m, _, _ := testConversation(t, "FDA")

	m, _ = click(m, 60, 0)

	if m.Mode() != ViewAgencySelection {
		t.Errorf("Mode() = %v, want agency selection", m.Mode())
	}
}

func TestHeaderLogoClick_OpensLink(t *testing.T) {
	opened := stubBrowser(t)
	m, _ := testModel(t)

	_, cmd := click(m, 1, 0)
	drain(cmd)

	if len(*opened) != 1 || (*opened)[0] != ui.LogoURL {
		t.Errorf("opened = %v, want %s", *opened, ui.LogoURL)
	}
	if m.Mode() != ViewAgencySelection {
		t.Error("logo click should not change view")
	}
}

func TestFooterLinkClick_OpensLink(t *testing.T) {
	opened := stubBrowser(t)
	m, _ := testModel(t)
	m.RenderToString()

	github := ui.FooterLinks[1].URL
	x := -1
	for i := 0; i < m.width; i++ {
		if url, ok := m.footer.LinkAt(i); ok && url == github {
			x = i
			break
		}
	}
	if x < 0 {
		t.Fatal("GitHub link not drawn in the footer")
	}

	_, cmd := click(m, x, m.height-1)
	drain(cmd)

	if len(*opened) != 1 || (*opened)[0] != github {
		t.Errorf("opened = %v, want %s", *opened, github)
	}
}

func TestToggleNews_Persists(t *testing.T) {
	m, _, _ := testConversation(t, "FDA")
	t.Cleanup(func() { ui.GetViewContext().SetNewsHidden(false) })

	m = sendKey(m, keys.CtrlN)

	if !ui.GetViewContext().NewsHidden() {
		t.Fatal("ctrl+n should hide the news panel")
	}
	if ui.GetViewContext().NewsWidth != 0 {
		t.Errorf("NewsWidth = %d, want 0", ui.GetViewContext().NewsWidth)
	}
	saved, err := config.LoadFrom(m.config.Path())
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if !saved.GetNewsPanelHidden() {
		t.Error("hidden news panel should be saved")
	}

	m = sendKey(m, keys.CtrlN)
	if ui.GetViewContext().NewsHidden() {
		t.Error("second ctrl+n should show the news panel")
	}
}

func TestTab_TogglesFocus(t *testing.T) {
	m, _, _ := testConversation(t, "FDA")

	m = sendKey(m, keys.Tab)
	if m.focus != FocusNews {
		t.Fatalf("focus = %v, want news", m.focus)
	}
	m = sendKey(m, keys.Escape)
	if m.focus != FocusChat {
		t.Errorf("esc in news should return to chat, focus = %v", m.focus)
	}
}

func TestNewsKeys_OpenAndCopy(t *testing.T) {
	opened := stubBrowser(t)
	copied := stubClipboard(t)
	m, backend := testModel(t)
	backend.news["Food and Drug Administration"] = []api.Article{
		{Title: "Recall issued", Link: "https://example.com/recall"},
		{Title: "New guidance", Link: "https://example.com/guidance"},
	}

	rec, _ := m.catalog.Get("FDA")
	result, cmd := m.Update(ui.AgencyConfirmedMsg{Record: rec})
	m = result.(*Model)
	m = deliver(m, drain(cmd)...)

	m = sendKey(m, keys.Tab)
	m = sendKey(m, keys.Down)
	m, _ = sendKeyCmd(m, keys.Enter)
	if len(*opened) != 1 || (*opened)[0] != "https://example.com/guidance" {
		t.Errorf("opened = %v", *opened)
	}

	_, _ = sendKeyCmd(m, "y")
	if len(*copied) != 1 || (*copied)[0] != "https://example.com/guidance" {
		t.Errorf("copied = %v", *copied)
	}
}

func TestCopyLastReply(t *testing.T) {
	copied := stubClipboard(t)
	m, _, _ := testConversation(t, "FDA")

	m, _ = sendKeyCmd(m, keys.CtrlY)
	if len(*copied) != 0 {
		t.Fatal("nothing should be copied before a reply")
	}

	m = typeText(m, "hello")
	m, msgs := sendKeyCmd(m, keys.Enter)
	reply, _ := findMsg[ReplyMsg](msgs)
	m = deliver(m, reply)

	_, _ = sendKeyCmd(m, keys.CtrlY)
	if len(*copied) != 1 || (*copied)[0] != "Here is what I found." {
		t.Errorf("copied = %v", *copied)
	}
}

func TestQuit_ClosesSession(t *testing.T) {
	m, _, _ := testConversation(t, "FDA")
	s := m.Session()

	_, cmd := m.Update(keyPress(keys.CtrlC))
	if cmd == nil {
		t.Fatal("ctrl+c should return a quit command")
	}
	if !s.IsClosed() {
		t.Error("quit should close the session")
	}
}

func TestSlowReply_NotifiesWhenUnfocused(t *testing.T) {
	sent := stubNotifier(t)
	cfg := testConfig(t)
	cfg.SetNotificationsEnabled(true)
	m, _ := testModelWithConfig(t, cfg)
	rec, _ := m.catalog.Get("FDA")
	m = deliver(m, ui.AgencyConfirmedMsg{Record: rec})

	m = typeText(m, "hello")
	m, msgs := sendKeyCmd(m, keys.Enter)
	reply, _ := findMsg[ReplyMsg](msgs)

	m = deliver(m, tea.BlurMsg{}, SlowMsg{Request: reply.Request})
	result, cmd := m.Update(reply)
	m = result.(*Model)
	drain(cmd)

	if len(*sent) != 1 || !strings.Contains((*sent)[0].Message, "FDA") {
		t.Errorf("notifications = %+v", *sent)
	}
}

func TestFastReply_DoesNotNotify(t *testing.T) {
	sent := stubNotifier(t)
	cfg := testConfig(t)
	cfg.SetNotificationsEnabled(true)
	m, _ := testModelWithConfig(t, cfg)
	rec, _ := m.catalog.Get("FDA")
	m = deliver(m, ui.AgencyConfirmedMsg{Record: rec}, tea.BlurMsg{})

	m = typeText(m, "hello")
	m, msgs := sendKeyCmd(m, keys.Enter)
	reply, _ := findMsg[ReplyMsg](msgs)
	_, cmd := m.Update(reply)
	drain(cmd)

	if len(*sent) != 0 {
		t.Errorf("fast reply should not notify, got %+v", *sent)
	}
}

func TestLastAgency_PositionsCursor(t *testing.T) {
	cfg := testConfig(t)
	cfg.SetLastAgency("SEC")
	m, _ := testModelWithConfig(t, cfg)

	rec, ok := m.agencyGrid.CursorRecord()
	if !ok || rec.ID != "SEC" {
		t.Errorf("cursor on %q, want SEC", rec.ID)
	}
}
