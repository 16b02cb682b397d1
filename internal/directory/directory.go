// Package directory holds a read-only snapshot of an account's domain data
// (agents, teams, inboxes, labels, ...) used to fill automation dropdowns.
package directory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gyaneshwarpardhi/automation/internal/catalog"
	"github.com/gyaneshwarpardhi/automation/internal/options"
)

// Snapshot implements options.Providers over data decoded from YAML.
type Snapshot struct {
	AgentList           []options.Option          `yaml:"agents"`
	CampaignList        []options.Titled          `yaml:"campaigns"`
	ContactList         []options.Option          `yaml:"contacts"`
	InboxList           []options.Option          `yaml:"inboxes"`
	LabelList           []options.Titled          `yaml:"labels"`
	TeamList            []options.Option          `yaml:"teams"`
	SLAPolicyList       []options.Option          `yaml:"sla_policies"`
	LanguageList        []options.Option          `yaml:"languages"`
	CountryList         []options.Option          `yaml:"countries"`
	CustomAttributeList []catalog.CustomAttribute `yaml:"custom_attributes"`
}

var _ options.Providers = (*Snapshot)(nil)

// Load reads a snapshot from path.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", path, err)
	}
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse directory %s: %w", path, err)
	}
	return &s, nil
}

func (s *Snapshot) Agents() []options.Option      { return s.AgentList }
func (s *Snapshot) Campaigns() []options.Titled   { return s.CampaignList }
func (s *Snapshot) Contacts() []options.Option    { return s.ContactList }
func (s *Snapshot) Inboxes() []options.Option     { return s.InboxList }
func (s *Snapshot) Labels() []options.Titled      { return s.LabelList }
func (s *Snapshot) Teams() []options.Option       { return s.TeamList }
func (s *Snapshot) SLAPolicies() []options.Option { return s.SLAPolicyList }
func (s *Snapshot) Languages() []options.Option   { return s.LanguageList }
func (s *Snapshot) Countries() []options.Option   { return s.CountryList }

func (s *Snapshot) CustomAttributes() []catalog.CustomAttribute {
	return s.CustomAttributeList
}
