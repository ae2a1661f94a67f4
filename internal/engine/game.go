// Package engine runs a case: it owns the detective's progress, the level being
// played and the save file, and turns each line of operator input into narration.
package engine

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tatianab/mystery-game/internal/hints"
	"github.com/tatianab/mystery-game/internal/models"
	"github.com/tatianab/mystery-game/internal/story"
)

type Phase int

const (
	NotStarted Phase = iota
	Running
	Completed
	Quit
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Quit:
		return "quit"
	}
	return "not started"
}

// Done reports whether the game accepts no more input.
func (p Phase) Done() bool { return p == Completed || p == Quit }

// Output is what one step of the game produced.
type Output struct {
	Text   string // narration, possibly several lines
	Prompt string // what the game is waiting for; empty once the game is over
	Phase  Phase
}

// SaveStore persists the detective's progress.
type SaveStore interface {
	Exists() bool
	Save(models.SaveRecord) error
	Load() (models.SaveRecord, error)
}

type Hinter interface {
	Hint(ctx context.Context, req hints.Request) (string, error)
}

// Recorder archives completed cases.
type Recorder interface {
	Record(ctx context.Context, cf models.CaseFile) error
}

type Option func(*Game)

func WithSaves(s SaveStore) Option { return func(g *Game) { g.saves = s } }

func WithLogger(l *zap.Logger) Option { return func(g *Game) { g.logger = l.Named("engine") } }

// WithRand seeds generated names and the opponent's moves.
func WithRand(r *rand.Rand) Option { return func(g *Game) { g.rng = r } }

func WithHinter(h Hinter) Option { return func(g *Game) { g.hinter = h } }

func WithRecorder(r Recorder) Option { return func(g *Game) { g.recorder = r } }

// WithOpponent overrides how the combat opponent picks its moves.
func WithOpponent(choose func() Move) Option { return func(g *Game) { g.opponent = choose } }

// await is what the next line of input answers.
type await int

const (
	awaitNothing await = iota
	awaitLoad
	awaitName
	awaitMenu
	awaitTalk
	awaitAnswer
	awaitMove
	awaitDoor
)

// Game is a single play-through of a case. It is not safe for concurrent use;
// callers hand it one line of input at a time.
type Game struct {
	story    *story.Case
	saves    SaveStore
	logger   *zap.Logger
	rng      *rand.Rand
	hinter   Hinter
	recorder Recorder
	opponent func() Move

	phase   Phase
	await   await
	player  *models.Player
	journal *models.Journal
	level   *level
	combat  *Combat
	buf     []string
}

func New(c *story.Case, opts ...Option) *Game {
	g := &Game{
		story:   c,
		logger:  zap.NewNop(),
		hinter:  hints.Static{},
		player:  models.NewPlayer(),
		journal: &models.Journal{},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if g.opponent == nil {
		g.opponent = RandomMove(g.rng)
	}
	return g
}

// Start opens the game: it offers to resume a save, or asks for the detective's name.
func (g *Game) Start(ctx context.Context) Output {
	if g.phase != NotStarted || g.await != awaitNothing {
		return g.flush()
	}
	g.say("=== " + g.story.Title + " ===")
	if g.saves != nil && g.saves.Exists() {
		g.await = awaitLoad
		return g.flush()
	}
	g.newGame()
	return g.flush()
}

// Handle feeds one line of operator input to the game.
func (g *Game) Handle(ctx context.Context, input string) Output {
	if g.phase.Done() {
		return g.flush()
	}
	input = strings.TrimSpace(input)

	switch g.await {
	case awaitNothing:
		return g.Start(ctx)
	case awaitLoad:
		g.handleLoad(input)
	case awaitName:
		g.handleName(input)
	case awaitMenu:
		g.handleMenu(ctx, input)
	case awaitTalk:
		g.handleTalk(input)
	case awaitAnswer:
		g.handleAnswer(ctx, input)
	case awaitMove:
		g.handleMove(ctx, input)
	case awaitDoor:
		g.handleDoor(input)
	}
	g.checkThreshold(ctx)
	return g.flush()
}

// Quit ends the game without saving.
func (g *Game) Quit() Output {
	if !g.phase.Done() {
		g.quit()
	}
	return g.flush()
}

func (g *Game) Phase() Phase { return g.phase }

func (g *Game) newGame() {
	if g.story.Welcome != "" {
		g.say(g.story.Welcome)
	}
	g.await = awaitName
}

func (g *Game) handleLoad(input string) {
	switch strings.ToLower(input) {
	case "yes", "y":
		if err := g.load(); err != nil {
			g.logger.Warn("load failed, starting a new game", zap.Error(err))
			g.sayf("Could not load the saved game: %v", err)
			g.say("Starting a new game instead.")
			g.player = models.NewPlayer()
			g.newGame()
		}
	case "no", "n":
		g.newGame()
	default:
		g.say("Invalid input. Please enter 'yes' or 'no'.")
	}
}

func (g *Game) load() error {
	rec, err := g.saves.Load()
	if err != nil {
		return err
	}
	if rec.Level > len(g.story.Levels) {
		return fmt.Errorf("%w: level %d is past the end of %q", models.ErrMalformedSave, rec.Level+1, g.story.Title)
	}

	g.player = models.PlayerFromRecord(rec)
	g.phase = Running
	g.record(fmt.Sprintf("Loaded game for %s at level %d", g.player.Name, g.player.Level+1))
	g.sayf("Game loaded successfully! Welcome back %s!", g.player.Name)

	if g.player.Level == len(g.story.Levels) {
		g.say("You have already solved this case.")
		g.phase = Completed
		g.await = awaitNothing
		return nil
	}
	g.sayf("You are currently on level %d.", g.player.Level+1)
	g.enterLevel(g.player.Level)
	return nil
}

func (g *Game) handleName(input string) {
	if err := g.player.SetName(input); err != nil {
		g.say("Your name cannot be blank.")
		return
	}
	g.phase = Running
	g.record("New game started by " + g.player.Name)
	g.sayf("Hello %s!", g.player.Name)
	g.enterLevel(0)
}

// enterLevel introduces the level and opens its menu.
func (g *Game) enterLevel(index int) {
	def := g.story.Levels[index]
	g.level = newLevel(def, index, g.rng)
	g.level.restore(g.player.Clues)
	g.combat = nil

	g.say("")
	g.sayf("Welcome to %s!", def.Name)
	if def.Intro != "" {
		g.say(def.Intro)
	}
	if len(g.level.present) > 0 {
		g.say("You see:")
		for _, key := range g.level.present {
			ch := g.level.characters[key]
			g.sayf("- %s, the %s", ch.Name(), describe(ch))
		}
	}
	g.record(fmt.Sprintf("Entered level %d: %s", index+1, def.Name))
	g.await = awaitMenu
}

func describe(ch models.Character) string {
	if ch.Role() != "" {
		return ch.Role()
	}
	return "Guest"
}

func (g *Game) handleMenu(ctx context.Context, choice string) {
	switch choice {
	case "1":
		g.beginTalk()
	case "2":
		g.viewLevelClue()
	case "3":
		g.search()
	case "4":
		g.beginSolve(ctx)
	case "5":
		g.list("Witness Statements", g.player.Statements.Items(), "You have not collected any witness statements yet.")
	case "6":
		g.list("Suspect Motives", g.player.Motives.Items(), "You have not collected any suspect motives yet.")
	case "7":
		g.list("Inventory", g.player.Inventory.Items(), "You have not collected any items yet.")
	case "8":
		g.quit()
	case "9":
		g.list("Clue Ledger", g.player.Clues.Items(), "You have not found any clues yet.")
	case "10":
		g.list("Dialogue Log", g.journal.Dialogue(), "You have not spoken to anyone yet.")
	case "11":
		if len(g.level.def.Doors) == 0 {
			g.say("Invalid choice. Please try again.")
			return
		}
		g.beginDoor()
	case "12":
		g.hint(ctx)
	default:
		g.say("Invalid choice. Please try again.")
	}
}

func (g *Game) menu() string {
	var b strings.Builder
	b.WriteString("What would you like to do?\n")
	b.WriteString("1. Talk to the characters\n")
	b.WriteString("2. View level clue\n")
	b.WriteString("3. Search for clues\n")
	b.WriteString("4. Solve the puzzle\n")
	b.WriteString("5. View witness statements\n")
	b.WriteString("6. View suspect motives\n")
	b.WriteString("7. View inventory\n")
	b.WriteString("8. Quit the game\n")
	b.WriteString("9. Review clue ledger\n")
	b.WriteString("10. View dialogue log\n")
	if len(g.level.def.Doors) > 0 {
		b.WriteString("11. Open a door\n")
	}
	b.WriteString("12. Ask for a hint\n")
	b.WriteString("Enter your choice:")
	return b.String()
}

func (g *Game) list(title string, items []string, empty string) {
	if len(items) == 0 {
		g.say(empty)
		return
	}
	g.say(title + ":")
	for _, item := range items {
		g.say("- " + item)
	}
}

func (g *Game) beginTalk() {
	if len(g.level.def.Talk.Options) == 0 {
		g.say("There is nobody here to talk to.")
		return
	}
	g.await = awaitTalk
}

func (g *Game) handleTalk(input string) {
	g.await = awaitMenu
	opt, ok := g.level.talkOption(input)
	if !ok {
		g.sayf("There is nobody called %q here.", input)
		return
	}
	if opt.RequiresSearch && !g.level.scene.Investigated() {
		g.say(or(opt.Locked, "You should look around before doing that."))
		return
	}
	for _, key := range opt.Characters {
		ch := g.level.characters[key]
		line := ch.Interact()
		g.say(line)
		g.record(models.DialoguePrefix + line)
		if action := ch.Action(); action != "" {
			g.say(action)
		}
	}
	if opt.Text != "" {
		g.say(opt.Text)
	}
	g.apply(opt.Effects)
}

func (g *Game) viewLevelClue() {
	def := g.level.def
	switch {
	case def.Clue == "":
		g.say("There is no clue to find in this level.")
	case g.player.Clues.Contains(def.Clue):
		g.sayf("Clue for %s:", def.Name)
		g.say("- " + def.Clue)
	default:
		g.say("You have not found the clue for this level yet.")
	}
}

func (g *Game) search() {
	def := g.level.def
	if !g.level.scene.Investigate() {
		g.say(or(def.Search.Already, "You have already searched "+g.level.scene.Location+"."))
		return
	}
	g.record("Searched " + g.level.scene.Location)
	g.say(or(def.Search.Text, "You search "+g.level.scene.Location+" but find nothing of note."))
	if !def.Search.HideClue && def.Clue != "" {
		g.addClue(def.Clue)
	}
	g.apply(def.Search.Effects)
	g.save()
}

func (g *Game) beginDoor() {
	for _, d := range g.level.def.Doors {
		g.sayf("%d. %s", d.Number, d.Label)
	}
	g.await = awaitDoor
}

func (g *Game) handleDoor(input string) {
	n, ok := parseNumber(input)
	if !ok {
		g.say("Please enter a door number.")
		return
	}
	g.await = awaitMenu
	d, ok := g.level.def.Door(n)
	if !ok {
		g.sayf("There is no door %d.", n)
		return
	}
	g.record(fmt.Sprintf("Opened door %d: %s", d.Number, d.Label))
	g.say(or(d.Text, "You open "+d.Label+"."))
	g.apply(d.Effects)
}

func (g *Game) hint(ctx context.Context) {
	def := g.level.def
	req := hints.Request{
		Case:      g.story.Title,
		Level:     def.Name,
		Scene:     def.SceneName(),
		Intro:     strings.TrimSpace(def.Intro),
		Puzzle:    strings.TrimSpace(def.Puzzle.Prompt + "\n" + def.Puzzle.Question),
		Clues:     g.player.Clues.Items(),
		Inventory: g.player.Inventory.Items(),
		Hint:      def.Hint,
	}
	text, err := g.hinter.Hint(ctx, req)
	if err != nil || strings.TrimSpace(text) == "" {
		g.logger.Warn("hint provider failed, using the authored hint", zap.String("level", def.Name), zap.Error(err))
		text = def.Hint
	}
	g.say("Hint: " + or(text, "You are on your own for this one, detective."))
}

// apply records evidence through the player's ledgers. Repeats are no-ops.
func (g *Game) apply(e story.Effects) {
	if e.Statement && g.level.witness != nil {
		if line := g.level.witness.StatementLine(); g.player.Statements.Add(line) {
			g.say(line)
			g.record("Witness statement recorded: " + line)
		}
	}
	if e.Motive && g.level.suspect != nil {
		if line := g.level.suspect.MotiveLine(); g.player.Motives.Add(line) {
			g.say(line)
			g.record("Suspect motive recorded: " + line)
		}
	}
	for _, c := range e.Clues {
		g.addClue(c)
	}
	for _, item := range e.Items {
		if g.player.Inventory.Add(item) {
			g.sayf("%s has been added to your inventory.", item)
			g.record("Item collected: " + item)
		}
	}
}

func (g *Game) addClue(clue string) {
	g.level.scene.AddClue(clue)
	if g.player.Clues.Add(clue) {
		g.say("New clue: " + clue)
		g.record("Clue found: " + clue)
	}
}

// solved rewards the detective and moves on to the next level.
func (g *Game) solved(ctx context.Context) {
	def := g.level.def
	g.record("Solved the puzzle in " + def.Name)
	if def.Clue != "" {
		g.addClue(def.Clue)
	}
	g.apply(def.Puzzle.Effects)
	if def.Reward != "" {
		if g.player.Inventory.Add(def.Reward) {
			g.sayf("%s has been added to your inventory.", def.Reward)
			g.record("Item collected: " + def.Reward)
		} else {
			g.sayf("You already have the %s in your inventory.", def.Reward)
		}
	}

	next := g.level.index + 1
	if err := g.player.AdvanceTo(next); err != nil {
		g.logger.Error("advance level", zap.Error(err))
		return
	}
	g.save()
	if next >= len(g.story.Levels) {
		g.complete(ctx)
		return
	}
	g.enterLevel(next)
}

func (g *Game) checkThreshold(ctx context.Context) {
	if g.phase != Running || g.level == nil {
		return
	}
	if !g.level.scene.Reached(g.level.def.ClueThreshold) {
		return
	}
	g.sayf("You have gathered %d clues at %s. The picture is complete!", g.level.scene.Count(), g.level.scene.Location)
	if err := g.player.AdvanceTo(len(g.story.Levels)); err != nil {
		g.logger.Error("advance level", zap.Error(err))
	}
	g.save()
	g.complete(ctx)
}

func (g *Game) complete(ctx context.Context) {
	g.phase = Completed
	g.await = awaitNothing
	g.combat = nil
	if g.story.Completion != "" {
		g.say("")
		g.say(g.story.Completion)
	}
	g.sayf("Congratulations %s! You completed the case.", g.player.Name)
	g.say("Thank you for playing!")
	g.record("Case closed by " + g.player.Name)

	if g.recorder == nil {
		return
	}
	if err := g.recorder.Record(ctx, g.caseFile()); err != nil {
		g.logger.Warn("archive case file", zap.Error(err))
	}
}

func (g *Game) caseFile() models.CaseFile {
	return models.CaseFile{
		Player:      g.player.Name,
		Case:        g.story.ShortName,
		Levels:      len(g.story.Levels),
		Clues:       g.player.Clues.Items(),
		Inventory:   g.player.Inventory.Items(),
		Statements:  g.player.Statements.Items(),
		Motives:     g.player.Motives.Items(),
		CompletedAt: time.Now().UTC(),
	}
}

func (g *Game) quit() {
	g.phase = Quit
	g.await = awaitNothing
	g.combat = nil
	g.say("Thanks for playing! Goodbye.")
	g.logger.Info("player quit", zap.String("player", g.player.Name), zap.Int("level", g.player.Level))
}

func (g *Game) save() {
	if g.saves == nil {
		return
	}
	if err := g.saves.Save(g.player.Record()); err != nil {
		g.logger.Error("save game", zap.Error(err))
		g.sayf("Warning: could not save your progress: %v", err)
		return
	}
	g.logger.Debug("game saved", zap.String("player", g.player.Name), zap.Int("level", g.player.Level))
}

// record adds an entry to the session journal and mirrors it to the log.
func (g *Game) record(entry string) {
	g.journal.Log(entry)
	g.logger.Info("journal", zap.String("entry", entry))
}

func (g *Game) say(text string) {
	g.buf = append(g.buf, strings.TrimRight(text, "\n"))
}

func (g *Game) sayf(format string, args ...any) {
	g.say(fmt.Sprintf(format, args...))
}

func (g *Game) prompt() string {
	switch g.await {
	case awaitLoad:
		return "Save game found! Would you like to load? (yes/no):"
	case awaitName:
		return "Please enter your name to continue:"
	case awaitMenu:
		return g.menu()
	case awaitTalk:
		return g.level.talkPrompt() + ":"
	case awaitAnswer:
		return or(g.level.def.Puzzle.Question, "Enter your answer") + ":"
	case awaitMove:
		return g.combat.Player.Name + " | " + or(g.level.def.Puzzle.Question, "Choose your move (attack/charge/defend)") + ":"
	case awaitDoor:
		return "Which door would you like to open?"
	}
	return ""
}

func (g *Game) flush() Output {
	out := Output{
		Text:   strings.Join(g.buf, "\n"),
		Prompt: g.prompt(),
		Phase:  g.phase,
	}
	g.buf = g.buf[:0]
	return out
}

func or(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
