package view

import (
	"sync"

	"go.uber.org/zap"
)

const prefIntroDone = "introDone"

// TutorialStep is one card of the intro tutorial.
type TutorialStep struct {
	Title   string `yaml:"title" json:"title"`
	Content string `yaml:"content" json:"content"`
}

var DefaultTutorial = []TutorialStep{
	{
		Title:   "Welcome to Packet Pals!",
		Content: "Packet Pals is an adventure game where you discover and battle creatures by scanning Wi-Fi networks!",
	},
	{
		Title:   "Discover Monsters!",
		Content: "Scan Wi-Fi networks to uncover unique monsters. Each network generates a different monster based on its properties.",
	},
	{
		Title:   "Battles and Parties",
		Content: "Battle wild monsters and add them to your party. Your party can hold up to 3 monsters at a time!",
	},
	{
		Title:   "Learn About Wigle",
		Content: "Wigle is a platform where you can contribute Wi-Fi data to support global research and mapping.",
	},
	{
		Title:   "Upload Wigle Data",
		Content: "You can upload your data to Wigle from the main menu using the 'Download Wigle Data' button.",
	},
}

func (vm *ViewModel) TutorialNext() Screen { return vm.run(vm.tutorialNext) }

func (vm *ViewModel) TutorialBack() Screen { return vm.run(vm.tutorialBack) }

// TutorialDone closes the tutorial for good.
func (vm *ViewModel) TutorialDone() Screen { return vm.run(vm.tutorialDone) }

func (vm *ViewModel) tutorialNext() {
	if vm.tutorialStep < len(vm.steps)-1 {
		vm.tutorialStep++
	}
}

func (vm *ViewModel) tutorialBack() {
	if vm.tutorialStep > 0 {
		vm.tutorialStep--
	}
}

func (vm *ViewModel) tutorialDone() {
	if err := vm.prefs.SetBool(prefIntroDone, true); err != nil {
		vm.log.Warn("view: persist introDone failed", zap.Error(err))
	}
	vm.tutorialOpen = false
}

func renderTutorial(vm *ViewModel) *TutorialCard {
	if !vm.tutorialOpen || len(vm.steps) == 0 {
		return nil
	}
	i := vm.tutorialStep
	last := len(vm.steps) - 1
	return &TutorialCard{
		Step:     i,
		Steps:    len(vm.steps),
		Title:    vm.steps[i].Title,
		Content:  vm.steps[i].Content,
		ShowBack: i > 0,
		ShowNext: i < last,
		ShowDone: i == last,
	}
}

// memPrefs keeps flags for the lifetime of the process only.
type memPrefs struct {
	mu sync.Mutex
	m  map[string]bool
}

func newMemPrefs() *memPrefs { return &memPrefs{m: map[string]bool{}} }

func (p *memPrefs) Bool(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.m[key]
}

func (p *memPrefs) SetBool(key string, v bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.m[key] = v
	return nil
}
