/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

var defaultWords = []SecretWord{
	{"Lionel Messi", "player"},
	{"Cristiano Ronaldo", "player"},
	{"Diego Maradona", "player"},
	{"Pelé", "player"},
	{"Zinedine Zidane", "player"},
	{"Ronaldinho", "player"},
	{"Ronaldo Nazário", "player"},
	{"Johan Cruyff", "player"},
	{"Franz Beckenbauer", "player"},
	{"Paolo Maldini", "player"},
	{"Andrés Iniesta", "player"},
	{"Xavi Hernández", "player"},
	{"Thierry Henry", "player"},
	{"Kylian Mbappé", "player"},
	{"Erling Haaland", "player"},
	{"Neymar", "player"},
	{"Luka Modrić", "player"},
	{"Kaká", "player"},
	{"Gianluigi Buffon", "player"},
	{"Iker Casillas", "player"},
	{"Manuel Neuer", "player"},
	{"Sergio Ramos", "player"},
	{"Carles Puyol", "player"},
	{"Andrea Pirlo", "player"},
	{"Zlatan Ibrahimović", "player"},
	{"Wayne Rooney", "player"},
	{"David Beckham", "player"},
	{"Mohamed Salah", "player"},
	{"Robert Lewandowski", "player"},
	{"Karim Benzema", "player"},
	{"Luis Suárez", "player"},
	{"Teófilo Cubillas", "player"},
	{"Paolo Guerrero", "player"},
	{"Claudio Pizarro", "player"},
	{"Alfredo Di Stéfano", "player"},
	{"Eusébio", "player"},
	{"George Best", "player"},
	{"Roberto Baggio", "player"},
	{"Gabriel Batistuta", "player"},
	{"Juan Román Riquelme", "player"},
	{"Real Madrid", "club"},
	{"FC Barcelona", "club"},
	{"Manchester United", "club"},
	{"Liverpool", "club"},
	{"Bayern Munich", "club"},
	{"Juventus", "club"},
	{"AC Milan", "club"},
	{"Inter Milan", "club"},
	{"Boca Juniors", "club"},
	{"River Plate", "club"},
	{"Alianza Lima", "club"},
	{"Universitario", "club"},
	{"Sporting Cristal", "club"},
	{"Ajax", "club"},
	{"Paris Saint-Germain", "club"},
	{"Chelsea", "club"},
	{"Arsenal", "club"},
	{"Borussia Dortmund", "club"},
	{"Flamengo", "club"},
	{"Santos", "club"},
	{"Camp Nou", "stadium"},
	{"Santiago Bernabéu", "stadium"},
	{"Maracanã", "stadium"},
	{"Wembley", "stadium"},
	{"La Bombonera", "stadium"},
	{"Estadio Azteca", "stadium"},
	{"Old Trafford", "stadium"},
	{"Anfield", "stadium"},
	{"San Siro", "stadium"},
	{"Estadio Nacional de Lima", "stadium"},
	{"Pep Guardiola", "coach"},
	{"José Mourinho", "coach"},
	{"Sir Alex Ferguson", "coach"},
	{"Carlo Ancelotti", "coach"},
	{"Jürgen Klopp", "coach"},
	{"Marcelo Bielsa", "coach"},
	{"Ricardo Gareca", "coach"},
	{"World Cup", "competition"},
	{"Champions League", "competition"},
	{"Copa Libertadores", "competition"},
	{"Copa América", "competition"},
	{"Ballon d'Or", "award"},
	{"Offside", "rule"},
	{"Penalty shootout", "rule"},
	{"VAR", "rule"},
	{"Red card", "rule"},
	{"Hat-trick", "term"},
	{"Bicycle kick", "term"},
	{"Panenka", "term"},
	{"Hand of God", "moment"},
}
