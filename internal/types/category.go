package types

// Moodle event names carried in the statement info extension. Activities are
// gradable, ressources are consultation-only.

var ActivityEvents = map[string]struct{}{
  `\mod_assign\event\assessable_submitted`: {},
  `\mod_assign\event\submission_graded`:    {},
  `\mod_feedback\event\response_submitted`: {},
  `\mod_forum\event\discussion_created`:    {},
  `\mod_forum\event\post_created`:          {},
  `\mod_quiz\event\attempt_submitted`:      {},
  `\mod_scorm\event\sco_launched`:          {},
  `\mod_scorm\event\scoreraw_submitted`:    {},
  `\mod_scorm\event\status_submitted`:      {},
}

var RessourceEvents = map[string]struct{}{
  `\mod_book\event\chapter_viewed`:           {},
  `\mod_chat\event\course_module_viewed`:     {},
  `\mod_data\event\course_module_viewed`:     {},
  `\mod_folder\event\course_module_viewed`:   {},
  `\mod_forum\event\discussion_viewed`:       {},
  `\mod_glossary\event\course_module_viewed`: {},
  `\mod_imscp\event\course_module_viewed`:    {},
  `\mod_lti\event\course_module_viewed`:      {},
  `\mod_page\event\course_module_viewed`:     {},
  `\mod_url\event\course_module_viewed`:      {},
  `\mod_wiki\event\course_module_viewed`:     {},
}

// IsActivity reports whether a category belongs to the gradable activity set.
func IsActivity(category string) bool {
  _, ok := ActivityEvents[category]
  return ok
}

// IsRessource reports whether a category belongs to the ressource set.
func IsRessource(category string) bool {
  _, ok := RessourceEvents[category]
  return ok
}
