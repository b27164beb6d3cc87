package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  []string
}

func (f *fakeExec) record(name string, arg ...string) {
	f.calls = append(f.calls, name)
	f.args = append(f.args, arg...)
}

func (f *fakeExec) isLoggedIn(ctx context.Context) bool { return f.loggedIn }

func (f *fakeExec) Register(ctx context.Context) error { f.record("register"); return nil }
func (f *fakeExec) Login(ctx context.Context) error {
	f.record("login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Whoami(ctx context.Context) error { f.record("whoami"); return nil }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.record("logout")
	f.loggedIn = false
	return nil
}

func (f *fakeExec) PatientAdd(ctx context.Context) error  { f.record("patient.add"); return nil }
func (f *fakeExec) PatientList(ctx context.Context) error { f.record("patient.list"); return nil }
func (f *fakeExec) PatientShow(ctx context.Context, id string) error {
	f.record("patient.show", id)
	return nil
}
func (f *fakeExec) PatientUpdate(ctx context.Context, id string) error {
	f.record("patient.update", id)
	return nil
}
func (f *fakeExec) PatientDelete(ctx context.Context, id string) error {
	f.record("patient.delete", id)
	return nil
}

func (f *fakeExec) DoctorAdd(ctx context.Context) error  { f.record("doctor.add"); return nil }
func (f *fakeExec) DoctorList(ctx context.Context) error { f.record("doctor.list"); return nil }
func (f *fakeExec) DoctorShow(ctx context.Context, id string) error {
	f.record("doctor.show", id)
	return nil
}
func (f *fakeExec) DoctorUpdate(ctx context.Context, id string) error {
	f.record("doctor.update", id)
	return nil
}
func (f *fakeExec) DoctorDelete(ctx context.Context, id string) error {
	f.record("doctor.delete", id)
	return nil
}
func (f *fakeExec) DoctorImport(ctx context.Context, path string) error {
	f.record("doctor.import", path)
	return nil
}
func (f *fakeExec) DoctorClear(ctx context.Context) error { f.record("doctor.clear"); return nil }

func (f *fakeExec) AppointmentAdd(ctx context.Context) error { f.record("appt.add"); return nil }
func (f *fakeExec) AppointmentList(ctx context.Context) error {
	f.record("appt.list")
	return nil
}
func (f *fakeExec) AppointmentShow(ctx context.Context, id string) error {
	f.record("appt.show", id)
	return nil
}
func (f *fakeExec) AppointmentUpdate(ctx context.Context, id string) error {
	f.record("appt.update", id)
	return nil
}
func (f *fakeExec) AppointmentDelete(ctx context.Context, id string) error {
	f.record("appt.delete", id)
	return nil
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"patient list",
		"patient show 42",
		"doctor import seed.json",
		"appt update 7",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func(context.Context) string { return "status" }, sc)

	want := []string{"login", "patient.list", "patient.show", "doctor.import", "appt.update"}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(want) && c == want[idx] {
			idx++
		}
	}
	if idx != len(want) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, want)
	}

	wantArgs := []string{"42", "seed.json", "7"}
	if len(exec.args) != len(wantArgs) {
		t.Fatalf("args mismatch: got %v, want %v", exec.args, wantArgs)
	}
	for i, a := range wantArgs {
		if exec.args[i] != a {
			t.Fatalf("arg %d: got %q, want %q", i, exec.args[i], a)
		}
	}
}

func TestRunREPL_UsageWithoutIDDoesNotDispatch(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("patient show\npatient update\ndoctor import\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func(context.Context) string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_ImportAndClearAreDoctorOnly(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("patient import x.json\npatient clear\nappt clear\ndoctor clear\nexit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func(context.Context) string { return "s" }, sc)

	if len(exec.calls) != 1 || exec.calls[0] != "doctor.clear" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_EOFExits(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("")
	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func(context.Context) string { return "" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
